package reservation

import (
	"errors"
	"strings"
	"time"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrTransitionMismatch = errors.New("transition does not belong to this reservation")
)

type Item struct {
	ProductID uuid.UUID
	Options   product.Options
	Quantity  int
}

func NewItem(productID uuid.UUID, options product.Options, quantity int) (Item, error) {
	if productID == uuid.Nil {
		return Item{}, errs.Wrap(errs.ErrInvalidReservationRequest, "product id is required")
	}
	if quantity < 1 {
		return Item{}, errs.Wrapf(errs.ErrInvalidReservationRequest, "quantity must be at least 1, got %d", quantity)
	}
	return Item{ProductID: productID, Options: options.Clone(), Quantity: quantity}, nil
}

type StockReservation struct {
	id        uuid.UUID
	userID    string
	items     []Item
	status    Status
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewStockReservation(userID string, items []Item, now time.Time, hold time.Duration) (*StockReservation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.Wrap(errs.ErrInvalidReservationRequest, "user id is required")
	}
	if len(items) == 0 {
		return nil, errs.Wrap(errs.ErrInvalidReservationRequest, "at least one item is required")
	}
	if hold <= 0 {
		return nil, errs.Wrap(errs.ErrInvalidReservationRequest, "expiration must be positive")
	}

	return &StockReservation{
		id:        uuid.New(),
		userID:    userID,
		items:     append([]Item(nil), items...),
		status:    StatusPending,
		expiresAt: now.Add(hold),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructStockReservation(
	id uuid.UUID,
	userID string,
	items []Item,
	status Status,
	expiresAt, createdAt, updatedAt time.Time,
) *StockReservation {
	return &StockReservation{
		id:        id,
		userID:    userID,
		items:     items,
		status:    status,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *StockReservation) ID() uuid.UUID { return r.id }
func (r *StockReservation) UserID() string { return r.userID }
func (r *StockReservation) Items() []Item { return r.items }
func (r *StockReservation) Status() Status { return r.status }
func (r *StockReservation) ExpiresAt() time.Time { return r.expiresAt }
func (r *StockReservation) CreatedAt() time.Time { return r.createdAt }
func (r *StockReservation) UpdatedAt() time.Time { return r.updatedAt }

func (r *StockReservation) IsExpiredAt(now time.Time) bool {
	return !now.Before(r.expiresAt)
}

// AsPending is the only way to reach Confirm, Release and Expire.
func (r *StockReservation) AsPending() (Pending, bool) {
	if r.status != StatusPending {
		return Pending{}, false
	}
	return Pending{r: r}, true
}

// Apply records a transition that the store has accepted.
func (r *StockReservation) Apply(t Transition) error {
	if t.ReservationID != r.id || t.From != r.status {
		return ErrTransitionMismatch
	}
	r.status = t.To
	r.updatedAt = t.At
	return nil
}

type Pending struct {
	r *StockReservation
}

func (p Pending) Reservation() *StockReservation { return p.r }

func (p Pending) Confirm(now time.Time) Transition { return p.to(StatusConfirmed, now) }
func (p Pending) Release(now time.Time) Transition { return p.to(StatusReleased, now) }
func (p Pending) Expire(now time.Time) Transition { return p.to(StatusExpired, now) }

func (p Pending) to(status Status, now time.Time) Transition {
	return Transition{
		ReservationID: p.r.id,
		From:          StatusPending,
		To:            status,
		At:            now,
		Items:         p.r.items,
	}
}

// Transition is a requested status change; the store applies it only while the row is still From.
type Transition struct {
	ReservationID uuid.UUID
	From          Status
	To            Status
	At            time.Time
	Items         []Item
}

// RestoresStock is true for released and expired holds; confirmed stock stays sold.
func (t Transition) RestoresStock() bool {
	return t.To == StatusReleased || t.To == StatusExpired
}
