package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type OrderStockCommands interface {
	// ApplyOrderCreated reports false when the event was already applied.
	ApplyOrderCreated(ctx context.Context, e order.CreatedEvent) (bool, error)
	ApplyOrderCancelled(ctx context.Context, e order.CancelledEvent) (bool, error)
}

type orderStockUseCaseImpl struct {
	uow     shared.UnitOfWork
	mutator *StockMutator
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewOrderStockUseCase(uow shared.UnitOfWork, mutator *StockMutator, m *metrics.Metrics, logger *slog.Logger) OrderStockCommands {
	return &orderStockUseCaseImpl{
		uow:     uow,
		mutator: mutator,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// ApplyOrderCreated moves ordered units from quantity to soldCount. The whole event is one
// transaction: any failing line fails the event and the transport redelivers it.
func (o *orderStockUseCaseImpl) ApplyOrderCreated(ctx context.Context, e order.CreatedEvent) (bool, error) {
	if err := e.Validate(); err != nil {
		o.metrics.OrderEvents.WithLabelValues(string(order.EventCreated), metrics.OutcomeRejected).Inc()
		return false, err
	}
	return o.apply(ctx, e.OrderID, order.EventCreated, e.Items, func(it order.LineItem) (int, int, shared.MovementReason) {
		return -it.Quantity, it.Quantity, shared.ReasonOrderCreated
	})
}

// ApplyOrderCancelled puts units back; soldCount is floored at zero by the mutator.
func (o *orderStockUseCaseImpl) ApplyOrderCancelled(ctx context.Context, e order.CancelledEvent) (bool, error) {
	if err := e.Validate(); err != nil {
		o.metrics.OrderEvents.WithLabelValues(string(order.EventCancelled), metrics.OutcomeRejected).Inc()
		return false, err
	}
	return o.apply(ctx, e.OrderID, order.EventCancelled, e.Items, func(it order.LineItem) (int, int, shared.MovementReason) {
		return it.Quantity, -it.Quantity, shared.ReasonOrderCancelled
	})
}

type lineDelta func(order.LineItem) (quantityDelta, soldDelta int, reason shared.MovementReason)

func (o *orderStockUseCaseImpl) apply(ctx context.Context, orderID string, eventType order.EventType, items []order.LineItem, delta lineDelta) (bool, error) {
	ctx, span := o.tracer.Start(ctx, "order."+string(eventType))
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.Int("order.items", len(items)))

	duplicate := false
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		duplicate = false
		fresh, err := tx.OrderEvents().MarkProcessed(ctx, tx.DB(), orderID, eventType)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !fresh {
			duplicate = true
			return nil
		}

		for i, it := range items {
			qty, sold, reason := delta(it)
			_, err := o.mutator.Mutate(ctx, tx, MutationRequest{
				ProductID:     it.ProductID,
				Options:       it.Options,
				MatchMode:     product.MatchSuperset,
				QuantityDelta: qty,
				SoldDelta:     sold,
				Reason:        reason,
				ReferenceID:   orderID,
			})
			if err != nil {
				return orderLineError(orderID, i, err)
			}
		}
		return nil
	})

	switch {
	case err != nil:
		span.RecordError(err)
		o.metrics.OrderEvents.WithLabelValues(string(eventType), outcomeOf(err)).Inc()
		o.logger.WarnContext(ctx, "order stock adjustment failed",
			"order_id", orderID,
			"event", eventType,
			"error", err.Error(),
		)
		return false, err
	case duplicate:
		o.metrics.OrderEvents.WithLabelValues(string(eventType), metrics.OutcomeSkipped).Inc()
		o.logger.InfoContext(ctx, "order event already applied", "order_id", orderID, "event", eventType)
		return false, nil
	default:
		o.metrics.OrderEvents.WithLabelValues(string(eventType), metrics.OutcomeApplied).Inc()
		o.logger.InfoContext(ctx, "order stock adjusted", "order_id", orderID, "event", eventType, "items", len(items))
		return true, nil
	}
}

// orderLineError reports an unresolvable variant as a missing product, the way order
// producers expect it.
func orderLineError(orderID string, line int, err error) error {
	if errors.Is(err, errs.ErrMissingOptions) || errors.Is(err, errs.ErrVariantNotFound) {
		return errs.Wrapf(errs.ErrProductNotFound, "order %s line %d: %s", orderID, line, err.Error())
	}
	if IsStockRejection(err) {
		return errs.Wrapf(err, "order %s line %d", orderID, line)
	}
	return err
}
