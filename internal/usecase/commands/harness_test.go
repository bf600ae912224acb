//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"
	"marketplace-catalog/internal/pkg/clock"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	store        *memStore
	clock        *clock.MockClock
	metrics      *metrics.Metrics
	reservations commands.ReservationCommands
	orders       commands.OrderStockCommands
	admin        commands.AdminStockCommands
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := newMemStore()
	uow := &memUoW{store: store}
	clk := clock.NewMockClock(baseTime)
	m := metrics.NewNop()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mutator := commands.NewStockMutator(m, logger)
	factory := reservation.NewFactory(clk, 15*time.Minute)

	return &harness{
		store:        store,
		clock:        clk,
		metrics:      m,
		reservations: commands.NewReservationUseCase(uow, mutator, factory, clk, m, logger, commands.ReservationConfig{SweepBatchSize: 50}),
		orders:       commands.NewOrderStockUseCase(uow, mutator, m, logger),
		admin:        commands.NewAdminStockUseCase(uow, mutator, logger),
	}
}

func mustVariant(t *testing.T, opts product.Options, qty int) product.Variant {
	t.Helper()
	price, err := product.NewMoney(1999)
	require.NoError(t, err)
	v, err := product.NewVariant(opts, qty, price, nil)
	require.NoError(t, err)
	return v
}

func intPtr(v int) *int { return &v }
func int64Ptr(v int64) *int64 { return &v }
