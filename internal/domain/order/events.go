package order

import (
	"strings"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"

	"github.com/google/uuid"
)

// StatusCancelled is the only order status this service reacts to on the status topic.
const StatusCancelled = "CANCELLED"

type EventType string

const (
	EventCreated   EventType = "order_created"
	EventCancelled EventType = "order_cancelled"
)

type LineItem struct {
	ProductID uuid.UUID
	Options   product.Options
	Quantity  int
}

type CreatedEvent struct {
	OrderID string
	Items   []LineItem
}

type CancelledEvent struct {
	OrderID string
	Items   []LineItem
}

type StatusChangedEvent struct {
	OrderID string
	Status  string
	Items   []LineItem
}

func (e StatusChangedEvent) IsCancellation() bool {
	return strings.EqualFold(e.Status, StatusCancelled)
}

func (e StatusChangedEvent) Cancellation() CancelledEvent {
	return CancelledEvent{OrderID: e.OrderID, Items: e.Items}
}

func (e CreatedEvent) Validate() error { return validate(e.OrderID, e.Items) }
func (e CancelledEvent) Validate() error { return validate(e.OrderID, e.Items) }

func validate(orderID string, items []LineItem) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.Wrap(errs.ErrInvalidOrderEvent, "order id is required")
	}
	if len(items) == 0 {
		return errs.Wrapf(errs.ErrInvalidOrderEvent, "order %s has no items", orderID)
	}
	for i, it := range items {
		if it.ProductID == uuid.Nil {
			return errs.Wrapf(errs.ErrInvalidOrderEvent, "order %s item %d: product id is required", orderID, i)
		}
		if it.Quantity < 1 {
			return errs.Wrapf(errs.ErrInvalidOrderEvent, "order %s item %d: quantity must be positive", orderID, i)
		}
	}
	return nil
}
