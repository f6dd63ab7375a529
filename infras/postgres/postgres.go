package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	driverName                = "postgres"
)

var errNoConnection = errors.New("database unreachable after retries")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) (*Connection, error) {
	write, err := Open("write", WriteDSN(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
	if err != nil {
		return nil, err
	}

	read, err := Open("read", readDSN(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	return &Connection{Read: read, Write: write}, nil
}

// FromDB uses one pool for both reads and writes.
func FromDB(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

// Ping checks the write pool, which every mutation depends on.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	return errors.Join(errs...)
}

func getDBName(cfg *config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteDSN builds the connection string of the primary database.
func WriteDSN(cfg *config.Config) string {
	w := cfg.DB.Postgres.Write

	return dsn(w.Username, w.Password, w.Host, w.Port, getDBName(cfg, w.Name), w.SSLMode)
}

func readDSN(cfg *config.Config) string {
	r := cfg.DB.Postgres.Read
	if r.Host == "" {
		return WriteDSN(cfg)
	}

	return dsn(r.Username, r.Password, r.Host, r.Port, getDBName(cfg, r.Name), r.SSLMode)
}

func dsn(username, password, host, port, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// Open connects with retries. maxRetry below one still makes a single attempt.
func Open(name, descriptor string, maxRetry, waitTime int) (*sqlx.DB, error) {
	attempts := max(maxRetry, 1)

	var lastErr error

	for retry := range attempts {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", errNoConnection, name, lastErr)
}
