package app

import (
	"context"
	"fmt"
	nethttp "net/http"
	"sync"

	"seatq/config"
	"seatq/helper"
	"seatq/infras/kafka"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/rebalancer"
	"seatq/internal/events"
	"seatq/shared/constant"
	"seatq/transport/http"

	"github.com/rs/zerolog/log"
)

type Server interface {
	nethttp.Handler
	// Serve blocks until ctx is done and the server has drained.
	Serve(ctx context.Context) error
}

type App struct {
	config     *config.Config
	server     Server
	rebalancer rebalancer.Rebalancer
	bridge     events.Bridge
	kafka      kafka.Client
	notifier   notifier.Notifier
	migrate    func(*config.Config) error
}

func New(
	cfg *config.Config,
	server *http.HTTP,
	rebalancer rebalancer.Rebalancer,
	bridge events.Bridge,
	kafka kafka.Client,
	notifier notifier.Notifier,
) *App {
	return &App{
		config:     cfg,
		server:     server,
		rebalancer: rebalancer,
		bridge:     bridge,
		kafka:      kafka,
		notifier:   notifier,
		migrate:    helper.Up,
	}
}

// ServeHTTP serves a single request without starting the background workers.
func (a *App) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	a.server.ServeHTTP(w, r)
}

// Run starts the background workers next to the HTTP server and returns once
// ctx is done and everything has stopped.
func (a *App) Run(ctx context.Context) error {
	if a.config.DB.Postgres.AutoMigrate && a.config.Matching.StoreDriver != constant.StoreDriverMemory {
		if err := a.migrate(a.config); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := a.rebalancer.Run(workerCtx); err != nil {
			log.Error().Err(err).Msg("rebalancer stopped")
		}
	}()

	if a.config.Kafka.Enable {
		wg.Add(2)

		go func() {
			defer wg.Done()

			a.bridge.Forward(workerCtx)
		}()

		go func() {
			defer wg.Done()

			a.bridge.ConsumeTableStatus(workerCtx)
		}()
	}

	err := a.server.Serve(ctx)

	cancelWorkers()
	wg.Wait()

	a.notifier.Close()

	if closeErr := a.kafka.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close kafka client")
	}

	log.Info().Msg("Service stopped")

	return err
}
