package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/di/auth"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.ForService(cfg, constant.ServiceAuth)
	logger.SetLogLevel(cfg)

	if err := cfg.Validate("JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"); err != nil {
		log.Fatal().Err(err).Msg("Invalid auth service configuration")
	}

	if err := di.Migrate(cfg, constant.ServiceAuth); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	server, err := auth.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}

	server.Serve()
}
