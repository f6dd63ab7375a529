package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 3
	allTarget = "all"
)

var actions = []string{helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp}

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msgf("usage: migrate <%s> <%s|%s>",
			strings.Join(actions, "|"), strings.Join(helper.Services, "|"), allTarget)
	}

	action, target := os.Args[1], os.Args[2]

	if !slices.Contains(actions, action) {
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	services := []string{target}
	if target == allTarget {
		services = helper.Services
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	for _, service := range services {
		if err := helper.Runner(cfg, service, action); err != nil {
			log.Fatal().Err(err).Str("service", service).Msg("Migration failed")
		}
	}
}
