package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/di/booking"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.ForService(cfg, constant.ServiceBooking)
	logger.SetLogLevel(cfg)

	if err := cfg.Validate("JWT_ACCESS_SECRET", "BOOKING_ROOM_DIRECTORY_URL"); err != nil {
		log.Fatal().Err(err).Msg("Invalid booking service configuration")
	}

	if err := di.Migrate(cfg, constant.ServiceBooking); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	server, err := booking.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize booking service")
	}

	server.Serve()
}
