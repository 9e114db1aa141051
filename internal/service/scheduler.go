package service

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/logger"
)

// Scheduler re-invokes the dispenser on a fixed interval with a freshly
// re-read token. It owns its ticker and stop channel; there is no
// process-wide handle to retrieve at teardown.
type Scheduler struct {
	dispenser *Dispenser
	settings  SettingStore
	interval  time.Duration
	logger    *logger.Logger

	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a new Scheduler.
// Parameters:
//   - dispenser: dispenser to invoke.
//   - settings: settings store the token is re-read from on every tick.
//   - interval: re-dispense interval; <= 0 disables the repeating trigger.
//   - log: logger.
// Returns:
//   - *Scheduler: initialized scheduler.
func NewScheduler(dispenser *Dispenser, settings SettingStore, interval time.Duration, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Scheduler{
		dispenser: dispenser,
		settings:  settings,
		interval:  interval,
		logger:    log,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start dispenses once immediately, then keeps re-dispensing on the
// configured interval until Stop is called or the context is canceled.
// Runs its loop in a goroutine and returns immediately.
// Parameters:
//   - ctx: context governing the whole scheduling loop.
// Returns: none.
func (s *Scheduler) Start(ctx context.Context) {
	s.started = true
	go func() {
		defer close(s.done)

		s.runOnce(ctx)

		if s.interval <= 0 {
			s.logger.Info("Repeating trigger disabled")
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// runOnce re-reads the token and dispenses. All dispense-level failures are
// already converted into error blocks; only storage errors surface here.
func (s *Scheduler) runOnce(ctx context.Context) {
	token, _, err := s.settings.Get(ctx, domain.SettingToken)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read token")
		return
	}

	start := time.Now()
	outcome, err := s.dispenser.Dispense(ctx, token)
	if err != nil {
		s.logger.WithError(err).Error("Dispense failed")
		return
	}
	logger.With(logger.Fields{
		logger.FieldStatus:     string(outcome),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Scheduled dispense completed")
}

// Stop halts the repeating trigger and waits for the loop to exit.
// Idempotent, and a no-op when Start was never called.
// Parameters: none.
// Returns: none.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if s.started {
		<-s.done
	}
}
