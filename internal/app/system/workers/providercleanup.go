// internal/app/system/workers/providercleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Evicter drops providers that have been idle too long.
// *provider.Registry satisfies it.
type Evicter interface {
	EvictIdle(idle time.Duration) int
}

// ExpiredSweeper removes remembered sessions past their expiry.
// *sessions.Store satisfies it.
type ExpiredSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProviderCleanup is a background worker that unmounts idle device
// providers and, when durable sessions live in Mongo, sweeps expired ones.
type ProviderCleanup struct {
	registry Evicter
	sweeper  ExpiredSweeper
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewProviderCleanup creates a new cleanup worker.
//
// Parameters:
//   - registry: the provider registry
//   - sweeper: remembered-session store, or nil for file-backed sessions
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 minute)
//   - idleTTL: how long a device may go unseen before its provider is dropped
func NewProviderCleanup(registry Evicter, sweeper ExpiredSweeper, logger *zap.Logger, interval, idleTTL time.Duration) *ProviderCleanup {
	return &ProviderCleanup{
		registry: registry,
		sweeper:  sweeper,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *ProviderCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("provider cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *ProviderCleanup) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("provider cleanup worker stopped")
	})
}

func (w *ProviderCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *ProviderCleanup) cleanup() {
	if n := w.registry.EvictIdle(w.idleTTL); n > 0 {
		w.log.Info("evicted idle providers", zap.Int("count", n))
	}

	if w.sweeper == nil {
		return
	}
	ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Short(), w.log, "sweep remembered sessions")
	defer cancel()

	count, err := w.sweeper.DeleteExpired(ctx)
	if err != nil {
		w.log.Error("failed to delete expired sessions", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("deleted expired sessions", zap.Int64("count", count))
	}
}
