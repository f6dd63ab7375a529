package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/di/room"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.ForService(cfg, constant.ServiceRoom)
	logger.SetLogLevel(cfg)

	if err := cfg.Validate("JWT_ACCESS_SECRET"); err != nil {
		log.Fatal().Err(err).Msg("Invalid room service configuration")
	}

	if err := di.Migrate(cfg, constant.ServiceRoom); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	server, err := room.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize room service")
	}

	server.Serve()
}
