package shared

import (
	"marketplace-catalog/internal/domain/product"

	"github.com/google/uuid"
)

type VariantDelta struct {
	ProductID       uuid.UUID
	Position        int
	QuantityDelta   int
	SoldDelta       int
	ExpectedVersion int64
}

type VariantDeltaResult struct {
	Applied  bool
	Quantity int
	Version  int64
}

type MovementOutcome string

const (
	MovementApplied MovementOutcome = "applied"
	MovementFailed  MovementOutcome = "failed"
)

type MovementReason string

const (
	ReasonReserve        MovementReason = "reserve"
	ReasonRelease        MovementReason = "release"
	ReasonExpire         MovementReason = "expire"
	ReasonOrderCreated   MovementReason = "order_created"
	ReasonOrderCancelled MovementReason = "order_cancelled"
	ReasonAdjust         MovementReason = "admin_adjust"
)

// StockMovement is one line of the stock audit log. Position is -1 when no variant was resolved.
type StockMovement struct {
	ProductID     uuid.UUID
	Position      int
	Options       product.Options
	QuantityDelta int
	SoldDelta     int
	Reason        MovementReason
	ReferenceID   string
	Outcome       MovementOutcome
	Err           error
}
