package bootstrap

import (
	"fmt"

	"github.com/PWalkow/ElasticsearchBundle/internal/api"
	"github.com/PWalkow/ElasticsearchBundle/internal/config"
	"github.com/PWalkow/ElasticsearchBundle/internal/database"
	"github.com/PWalkow/ElasticsearchBundle/internal/elasticsearch"
	"github.com/PWalkow/ElasticsearchBundle/internal/elasticsearch/mappings"
	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
	"github.com/PWalkow/ElasticsearchBundle/internal/manager"
	"github.com/PWalkow/ElasticsearchBundle/internal/service"
)

// SetupHTTPServer builds the configured managers, wires the index service and
// returns the HTTP server ready to start.
func SetupHTTPServer(
	cfg *config.Config,
	esClient *elasticsearch.Client,
	db *database.Connection,
	log logger.Logger,
) (*api.Server, error) {
	managers, err := BuildManagers(cfg, esClient, log)
	if err != nil {
		return nil, err
	}

	// A typed nil must not reach the interface field, the service treats a
	// nil audit store as "auditing disabled".
	var audit service.AuditStore
	if db != nil {
		audit = db
	}

	indexService := service.NewIndexService(managers, audit, log)
	router := api.SetupRouter(indexService, esClient, log)

	return api.NewServer(router, cfg.Service.Port, log), nil
}

// BuildManagers constructs one Manager per configured entry.
func BuildManagers(
	cfg *config.Config,
	esClient *elasticsearch.Client,
	log logger.Logger,
) (map[string]*manager.Manager, error) {
	managers := make(map[string]*manager.Manager, len(cfg.Managers))

	for name, mc := range cfg.Managers {
		body, err := mappings.BuildIndexBody(mc.Types, mc.Shards, mc.Replicas, mc.Settings)
		if err != nil {
			return nil, fmt.Errorf("manager %q: %w", name, err)
		}

		settings := &manager.IndexSettings{
			IndexName: mc.IndexName,
			Body:      body,
		}
		managers[name] = manager.New(esClient, settings,
			log.With(logger.String("manager", name)),
			manager.WithCommitNotifier(service.MetricsNotifier{}),
			manager.WithReadOnly(mc.ReadOnly),
		)

		log.Info("Manager configured",
			logger.String("manager", name),
			logger.String("index", mc.IndexName),
			logger.Strings("types", mc.Types),
			logger.Bool("read_only", mc.ReadOnly),
		)
	}

	return managers, nil
}
