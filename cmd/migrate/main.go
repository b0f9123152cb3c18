package main

import (
	"os"

	"seatq/config"
	"seatq/helper"
	"seatq/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop or version")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("configuration incomplete, continuing with database settings")
	}

	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
