// Package di holds the providers shared by the service injectors.
package di

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/handlers/health"
	"hotel/transport/http"

	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Configurations = wire.NewSet(
	config.Get,
)

// PostgresCheck reports the database as ready when a ping succeeds.
func PostgresCheck(db *postgres.Connection) health.Check {
	return db.Ping
}

func RedisCheck(client *goRedis.Client) health.Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err() //nolint:wrapcheck
	}
}

// Migrate applies pending migrations of service when AUTO_MIGRATE is set.
func Migrate(cfg *config.Config, service string) error {
	if !cfg.DB.Postgres.AutoMigrate {
		return nil
	}

	if err := helper.Up(cfg, service); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", service, err)
	}

	return nil
}

// Closers registers the resources released once the server has drained.
// Traces are flushed last so spans of the final requests are kept.
func Closers(server *http.HTTP, ot otel.Otel, db *postgres.Connection, rdb *goRedis.Client) {
	if db != nil {
		server.OnShutdown(func(context.Context) error {
			log.Info().Msg("Closing postgres connections")

			return db.Close()
		})
	}

	if rdb != nil {
		server.OnShutdown(func(context.Context) error {
			log.Info().Msg("Closing redis client")

			return rdb.Close() //nolint:wrapcheck
		})
	}

	server.OnShutdown(ot.Shutdown)
}
