package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"seatq/config"
	"seatq/di"
	"seatq/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title seatq API
// @version 1.0
// @description Walk-in queue and table seating.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Service exited with error")

		stop()
		cleanup()
		os.Exit(1)
	}
}
