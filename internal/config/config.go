package config

import (
	"time"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName    = "elasticsearch-bundle"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8092
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBName         = "elasticsearch_bundle"
	defaultDBSSLMode      = "disable"
	defaultDBMaxConns     = 25
	defaultDBMaxIdleConns = 5
	defaultDBConnLifetime = 5 * time.Minute
	defaultESURL          = "http://localhost:9200"
	defaultESMaxRetries   = 3
	defaultESTimeout      = 30 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// Config holds the application configuration.
type Config struct {
	Service       ServiceConfig            `yaml:"service"`
	Database      DatabaseConfig           `yaml:"database"`
	Elasticsearch ElasticsearchConfig      `yaml:"elasticsearch"`
	Managers      map[string]ManagerConfig `yaml:"managers"`
	Logging       logger.Config            `yaml:"logging"`
}

// ServiceConfig holds service configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"BUNDLE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
}

// DatabaseConfig holds the audit database configuration.
type DatabaseConfig struct {
	Host                  string        `env:"POSTGRES_BUNDLE_HOST"     yaml:"host"`
	Port                  int           `env:"POSTGRES_BUNDLE_PORT"     yaml:"port"`
	User                  string        `env:"POSTGRES_BUNDLE_USER"     yaml:"user"`
	Password              string        `env:"POSTGRES_BUNDLE_PASSWORD" yaml:"password"`
	Database              string        `env:"POSTGRES_BUNDLE_DB"       yaml:"database"`
	SSLMode               string        `yaml:"sslmode"`
	MaxConnections        int           `yaml:"max_connections"`
	MaxIdleConns          int           `yaml:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// ElasticsearchConfig holds Elasticsearch connection configuration.
type ElasticsearchConfig struct {
	URL        string        `env:"ELASTICSEARCH_URL" yaml:"url"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ManagerConfig declares one logical index managed by the bundle. The key in
// Config.Managers is the manager name used in API routes.
type ManagerConfig struct {
	IndexName string         `yaml:"index_name"`
	Types     []string       `yaml:"types"`
	Shards    int            `yaml:"shards"`
	Replicas  int            `yaml:"replicas"`
	Settings  map[string]any `yaml:"settings"`
	ReadOnly  bool           `yaml:"read_only"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setManagerDefaults(cfg)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnectionMaxLifetime == 0 {
		d.ConnectionMaxLifetime = defaultDBConnLifetime
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.URL == "" {
		e.URL = defaultESURL
	}
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Timeout == 0 {
		e.Timeout = defaultESTimeout
	}
}

func setManagerDefaults(cfg *Config) {
	for name, mc := range cfg.Managers {
		if mc.IndexName == "" {
			mc.IndexName = name
		}
		if mc.Shards == 0 {
			mc.Shards = 1
		}
		if mc.Replicas == 0 {
			mc.Replicas = 1
		}
		cfg.Managers[name] = mc
	}
}

func setLoggingDefaults(l *logger.Config) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
