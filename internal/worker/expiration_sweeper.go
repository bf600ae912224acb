package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/commands"
)

// Expirer is the part of the reservation usecase the sweeper drives.
type Expirer interface {
	ExpireReservations(ctx context.Context) (commands.ExpireSummary, error)
}

type SweeperConfig struct {
	Interval time.Duration
	// RunTimeout bounds a single sweep; zero means Interval.
	RunTimeout time.Duration
}

const (
	sweepResultOK    = "ok"
	sweepResultError = "error"
)

// ExpirationSweeper runs ExpireReservations on a fixed interval until stopped.
// Overlapping sweeps in other replicas are harmless; the conditional status update picks one winner.
type ExpirationSweeper struct {
	expirer Expirer
	cfg     SweeperConfig
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExpirationSweeper(expirer Expirer, cfg SweeperConfig, m *metrics.Metrics, logger *slog.Logger) *ExpirationSweeper {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = cfg.Interval
	}
	return &ExpirationSweeper{
		expirer: expirer,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// Start launches the loop in the background. Calling Start twice is a no-op.
func (s *ExpirationSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)

	s.logger.Info("reservation sweeper started", "interval", s.cfg.Interval.String())
}

// Stop cancels the loop and waits for an in-flight sweep, or for ctx to end.
func (s *ExpirationSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		s.logger.Info("reservation sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ExpirationSweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single sweep and records its outcome.
func (s *ExpirationSweeper) RunOnce(ctx context.Context) (commands.ExpireSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	summary, err := s.expirer.ExpireReservations(ctx)
	s.metrics.SweepDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.SweepRuns.WithLabelValues(sweepResultError).Inc()
		s.logger.ErrorContext(ctx, "reservation sweep failed", "error", err.Error())
		return summary, err
	}

	s.metrics.SweepRuns.WithLabelValues(sweepResultOK).Inc()
	s.metrics.SweepExpired.Add(float64(summary.Expired))
	if summary.Failed > 0 {
		s.logger.WarnContext(ctx, "reservation sweep finished with failures",
			"expired", summary.Expired,
			"failed", summary.Failed,
		)
	}
	return summary, nil
}
