package main

import (
	"hotel/config"
	"hotel/di/gateway"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Reservation API
// @version 1.0
// @description Gateway in front of the auth, room and booking services.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.ForService(cfg, constant.ServiceGateway)
	logger.SetLogLevel(cfg)

	if err := cfg.Validate(config.GatewayRequired...); err != nil {
		log.Fatal().Err(err).Msg("Invalid gateway configuration")
	}

	server, err := gateway.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize gateway")
	}

	server.Serve()
}
