// Package worker runs background maintenance next to the API.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PendingMethodStore removes payment methods whose activation never arrived.
type PendingMethodStore interface {
	DeleteStalePending(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper periodically deletes pending payment methods older than ttl.
type Sweeper struct {
	store    PendingMethodStore
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewSweeper(store PendingMethodStore, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, ttl: ttl, interval: interval, now: time.Now}
}

func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run(ctx)
}

// run sweeps once on start, then on every tick.
func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	_, _ = s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one pass and reports how many methods were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	log := zerolog.Ctx(ctx)
	cutoff := s.now().Add(-s.ttl)

	n, err := s.store.DeleteStalePending(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("sweep pending payment methods")
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("swept pending payment methods")
	}
	return n, nil
}

func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
