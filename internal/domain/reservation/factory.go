package reservation

import (
	"time"

	"marketplace-catalog/internal/pkg/clock"
	"marketplace-catalog/internal/pkg/errs"
)

// MaxExpirationMinutes caps a requested hold at 7 days.
const MaxExpirationMinutes = 7 * 24 * 60

type Factory struct {
	Clock       clock.Clock
	DefaultHold time.Duration
}

func NewFactory(clock clock.Clock, defaultHold time.Duration) *Factory {
	return &Factory{
		Clock:       clock,
		DefaultHold: defaultHold,
	}
}

// CreateReservation builds a pending hold; a nil expirationMinutes uses the default horizon.
func (f *Factory) CreateReservation(userID string, items []Item, expirationMinutes *int) (*StockReservation, error) {
	hold := f.DefaultHold
	if expirationMinutes != nil {
		if *expirationMinutes < 1 || *expirationMinutes > MaxExpirationMinutes {
			return nil, errs.Wrapf(errs.ErrInvalidReservationRequest,
				"expiration minutes must be between 1 and %d, got %d", MaxExpirationMinutes, *expirationMinutes)
		}
		hold = time.Duration(*expirationMinutes) * time.Minute
	}
	return NewStockReservation(userID, items, f.Clock.Now(), hold)
}
