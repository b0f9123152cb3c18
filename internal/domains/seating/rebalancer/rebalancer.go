// Package rebalancer drives batch re-matching on a timer and whenever a
// table becomes available.
package rebalancer

//go:generate go run go.uber.org/mock/mockgen -source=./rebalancer.go -destination=../mocks/rebalancer_mock.go -package=mocks

import (
	"context"
	"sync"
	"time"

	"seatq/config"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/service"

	"github.com/rs/zerolog/log"
)

const defaultInterval = 30 * time.Second

type Rebalancer interface {
	// Run blocks until ctx is done.
	Run(ctx context.Context) error
	// Trigger asks for a cycle without waiting for it. Triggers that arrive
	// while a cycle is pending collapse into that one.
	Trigger()
	// RunNow runs a cycle on the caller's goroutine, after any cycle in progress.
	RunNow(ctx context.Context) (int, error)
}

type rebalancerImpl struct {
	seating  service.Seating
	interval time.Duration
	pending  chan struct{}
	cycle    sync.Mutex
}

func New(seating service.Seating, cfg *config.Config) Rebalancer {
	interval := time.Duration(cfg.Matching.RebalanceIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	return &rebalancerImpl{
		seating:  seating,
		interval: interval,
		pending:  make(chan struct{}, 1),
	}
}

func (r *rebalancerImpl) Run(ctx context.Context) error {
	handle := r.seating.Subscribe(func(event notifier.Event) {
		// A resync may hide a freed table.
		if event.TableFreed() || event.Resync() {
			r.Trigger()
		}
	})
	defer r.seating.Unsubscribe(handle)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Msg("Rebalancing loop started")

	r.Trigger()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Rebalancing loop stopped")

			return nil
		case <-ticker.C:
			r.Trigger()
		case <-r.pending:
			r.runCycle(ctx)
		}
	}
}

func (r *rebalancerImpl) Trigger() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

func (r *rebalancerImpl) RunNow(ctx context.Context) (int, error) {
	r.cycle.Lock()
	defer r.cycle.Unlock()

	return r.seating.RunRebalancing(ctx) //nolint:wrapcheck
}

func (r *rebalancerImpl) runCycle(ctx context.Context) {
	assigned, err := r.RunNow(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rebalancing cycle failed")

		return
	}

	if assigned > 0 {
		log.Info().Int("assigned", assigned).Msg("Rebalancing cycle seated waiting customers")
	}
}
