package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationsDir        = "migrations"
	defaultMigrationsTbl = "schema_migrations"
)

// Services lists the services that own a schema.
var Services = []string{"auth", "room", "booking"}

// MigrationsTable is the version table of service. Services may share one
// database, so each keeps its own table.
func MigrationsTable(cfg *config.Config, service string) string {
	if cfg.DB.Postgres.MigrationTable != "" {
		return cfg.DB.Postgres.MigrationTable + "_" + service
	}

	return defaultMigrationsTbl + "_" + service
}

// Source is the migrate source URL of service.
func Source(service string) string {
	return "file://" + migrationsDir + "/" + service
}

func getConnection(cfg *config.Config, service string) (*migrate.Migrate, error) {
	if !slices.Contains(Services, service) {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	connectionString := postgres.WriteDSN(cfg) + "&x-migrations-table=" + MigrationsTable(cfg, service)

	mig, err := migrate.New(Source(service), connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies action to the schema of service.
func Runner(cfg *config.Config, service, action string) error {
	mig, err := getConnection(cfg, service)
	if err != nil {
		return err
	}

	defer mig.Close()

	logger := log.With().Str("service", service).Str("action", action).Logger()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		logger.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		logger.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		logger.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		logger.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(cfg *config.Config, service string) error {
	return Runner(cfg, service, ActionUp)
}
