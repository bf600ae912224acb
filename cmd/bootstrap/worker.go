package bootstrap

import (
	"context"
	"log/slog"

	"marketplace-catalog/internal/pkg/config"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpirationSweeper,
	),
	fx.Invoke(startSweeper),
)

func NewExpirationSweeper(cfg config.Config, reservations commands.ReservationCommands, m *metrics.Metrics, logger *slog.Logger) *worker.ExpirationSweeper {
	return worker.NewExpirationSweeper(reservations, worker.SweeperConfig{
		Interval: cfg.Reservation.SweepInterval,
	}, m, logger)
}

func startSweeper(lc fx.Lifecycle, cfg config.Config, sweeper *worker.ExpirationSweeper, logger *slog.Logger) {
	if !cfg.Reservation.SweepEnabled {
		logger.Info("reservation sweeper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
