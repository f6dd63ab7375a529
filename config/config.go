package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envProduction = "production"

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"30"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	Auth struct {
		AllowRoleSignup bool `envconfig:"ALLOW_ROLE_SIGNUP"`
	} `envconfig:"AUTH"`

	Gateway struct {
		AuthURL                string `envconfig:"AUTH_URL"`
		RoomURL                string `envconfig:"ROOM_URL"`
		BookingURL             string `envconfig:"BOOKING_URL"`
		UpstreamTimeoutSeconds int    `envconfig:"UPSTREAM_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"GATEWAY"`

	Booking struct {
		RoomDirectoryURL       string `envconfig:"ROOM_DIRECTORY_URL"`
		RoomDirectoryTimeoutMs int    `envconfig:"ROOM_DIRECTORY_TIMEOUT_MS" default:"2000"`
		RoomCacheTTL           int    `envconfig:"ROOM_CACHE_TTL"            default:"60"`
	} `envconfig:"BOOKING"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, envProduction)
}

// GatewayRequired lists the settings the gateway needs, whichever way it is
// started.
var GatewayRequired = []string{"JWT_ACCESS_SECRET", "GATEWAY_AUTH_URL", "GATEWAY_ROOM_URL", "GATEWAY_BOOKING_URL"}

// Validate checks the settings a service cannot run without. Secrets have no
// built-in fallback: in production a missing value stops startup, elsewhere
// it is only reported.
func (c *Config) Validate(required ...string) error {
	values := map[string]string{
		"JWT_ACCESS_SECRET":          c.JWT.AccessSecret,
		"JWT_REFRESH_SECRET":         c.JWT.RefreshSecret,
		"GATEWAY_AUTH_URL":           c.Gateway.AuthURL,
		"GATEWAY_ROOM_URL":           c.Gateway.RoomURL,
		"GATEWAY_BOOKING_URL":        c.Gateway.BookingURL,
		"BOOKING_ROOM_DIRECTORY_URL": c.Booking.RoomDirectoryURL,
	}

	var errs []error

	for _, key := range required {
		if strings.TrimSpace(values[key]) == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	if c.IsProduction() {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Warn().Err(err).Msg("Configuration incomplete, continuing outside production")

	return nil
}
