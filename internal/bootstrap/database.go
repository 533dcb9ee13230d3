package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/PWalkow/ElasticsearchBundle/internal/config"
	"github.com/PWalkow/ElasticsearchBundle/internal/database"
)

const schemaTimeout = 10 * time.Second

// SetupDatabase creates the audit database connection and ensures the
// operation history table exists.
func SetupDatabase(cfg *config.Config) (*database.Connection, error) {
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnectionMaxLifetime,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure audit schema: %w", err)
	}

	return db, nil
}
