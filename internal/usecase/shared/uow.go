package shared

import (
	"context"
	"time"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

// UnitOfWork runs fn in one transaction. fn may be invoked again after a serialization
// failure or deadlock, so it must not have effects outside tx.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Products() ProductRepository
	Reservations() ReservationRepository
	Movements() StockMovementRepository
	OrderEvents() OrderEventRepository
	DB() sqlc.DBTX
}

type ProductRepository interface {
	FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*product.Product, error)
	Create(ctx context.Context, db sqlc.DBTX, p *product.Product) error
	// ApplyVariantDelta is the version compare-and-swap. Applied is false when the stored
	// version no longer equals ExpectedVersion.
	ApplyVariantDelta(ctx context.Context, db sqlc.DBTX, delta VariantDelta) (VariantDeltaResult, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, db sqlc.DBTX, r *reservation.StockReservation) error
	FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*reservation.StockReservation, error)
	FindLatestByUser(ctx context.Context, db sqlc.DBTX, userID string) (*reservation.StockReservation, error)
	FindExpiredPending(ctx context.Context, db sqlc.DBTX, now time.Time, limit int32) ([]*reservation.StockReservation, error)
	// Transition reports false when another writer already moved the reservation out of t.From.
	Transition(ctx context.Context, db sqlc.DBTX, t reservation.Transition) (bool, error)
}

type StockMovementRepository interface {
	Record(ctx context.Context, db sqlc.DBTX, m StockMovement) error
}

type OrderEventRepository interface {
	// MarkProcessed reports false when the event was already handled.
	MarkProcessed(ctx context.Context, db sqlc.DBTX, orderID string, eventType order.EventType) (bool, error)
}
