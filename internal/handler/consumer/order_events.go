package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "marketplace-catalog/handler/consumer"

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	OrderCreatedTopic string
	OrderStatusTopic  string
	MaxAttempts       int
	RetryBackoff      time.Duration
}

type lineItemPayload struct {
	ProductID string            `json:"productId"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity"`
}

type orderEventPayload struct {
	OrderID string            `json:"orderId"`
	Status  string            `json:"status,omitempty"`
	Items   []lineItemPayload `json:"items"`
}

// errPoison marks messages that can never succeed; they are committed without retry.
var errPoison = errors.New("poison message")

// refusals are answers from the stock adjuster that a redelivery would repeat.
var refusals = []error{
	errs.ErrProductNotFound,
	errs.ErrVariantNotFound,
	errs.ErrMissingOptions,
	errs.ErrInsufficientStock,
}

// OrderEventConsumer feeds order lifecycle events into the stock adjuster. Offsets are
// committed once a message succeeds or is refused. Transient failures are retried until
// they clear or the consumer stops.
type OrderEventConsumer struct {
	reader MessageReader
	orders commands.OrderStockCommands
	cfg    Config
	logger *slog.Logger
	tracer trace.Tracer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewOrderEventConsumer(reader MessageReader, orders commands.OrderStockCommands, cfg Config, logger *slog.Logger) *OrderEventConsumer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &OrderEventConsumer{
		reader: reader,
		orders: orders,
		cfg:    cfg,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

func (c *OrderEventConsumer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		c.Run(ctx)
	}(c.done)

	c.logger.Info("order event consumer started",
		"created_topic", c.cfg.OrderCreatedTopic,
		"status_topic", c.cfg.OrderStatusTopic,
	)
}

func (c *OrderEventConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return c.reader.Close()
	}
	cancel()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.logger.Info("order event consumer stopped")
	return c.reader.Close()
}

// Run fetches and handles messages until ctx is cancelled.
func (c *OrderEventConsumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WarnContext(ctx, "failed to fetch order event", "error", err.Error())
			if !sleep(ctx, c.cfg.RetryBackoff) {
				return
			}
			continue
		}

		if !c.Handle(ctx, msg) {
			return
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "failed to commit order event offset",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err.Error(),
			)
		}
	}
}

// Handle processes one message. It returns false only when ctx ended before the message
// was settled, in which case the offset must not be committed.
//
// Conflicts and database failures never settle a message: after MaxAttempts the backoff
// stops growing and every further failure is logged at error level.
func (c *OrderEventConsumer) Handle(ctx context.Context, msg kafka.Message) bool {
	carrier := propagation.MapCarrier{}
	for _, h := range msg.Headers {
		carrier[h.Key] = string(h.Value)
	}
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, carrier)
	msgCtx, span := c.tracer.Start(msgCtx, "consume "+msg.Topic, trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination", msg.Topic),
		attribute.Int("messaging.kafka.partition", msg.Partition),
		attribute.Int64("messaging.kafka.offset", msg.Offset),
	)

	for attempt := 1; ; attempt++ {
		err := c.dispatch(msgCtx, msg)
		if err == nil {
			return true
		}
		span.RecordError(err)

		switch {
		case errs.IsAny(err, errPoison, errs.ErrInvalidOrderEvent):
			c.logger.ErrorContext(msgCtx, "dropping malformed order event",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err.Error(),
			)
			return true
		case errs.IsAny(err, refusals...):
			c.logger.ErrorContext(msgCtx, "order event refused, skipping",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err.Error(),
			)
			return true
		case attempt >= c.cfg.MaxAttempts:
			c.logger.ErrorContext(msgCtx, "order event still failing, retrying",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"attempt", attempt,
				"error", err.Error(),
			)
		default:
			c.logger.WarnContext(msgCtx, "order event failed, retrying",
				"topic", msg.Topic,
				"attempt", attempt,
				"error", err.Error(),
			)
		}

		if !sleep(ctx, c.backoff(attempt)) {
			return false
		}
	}
}

// backoff grows linearly and is capped at MaxAttempts steps.
func (c *OrderEventConsumer) backoff(attempt int) time.Duration {
	return c.cfg.RetryBackoff * time.Duration(min(attempt, c.cfg.MaxAttempts))
}

func (c *OrderEventConsumer) dispatch(ctx context.Context, msg kafka.Message) error {
	var payload orderEventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return errs.Mark(errs.Wrap(err, "decode order event"), errPoison)
	}
	items, err := toLineItems(payload.Items)
	if err != nil {
		return err
	}

	switch msg.Topic {
	case c.cfg.OrderCreatedTopic:
		_, err = c.orders.ApplyOrderCreated(ctx, order.CreatedEvent{OrderID: payload.OrderID, Items: items})
		return err
	case c.cfg.OrderStatusTopic:
		e := order.StatusChangedEvent{OrderID: payload.OrderID, Status: payload.Status, Items: items}
		if !e.IsCancellation() {
			c.logger.DebugContext(ctx, "ignoring order status change", "order_id", e.OrderID, "status", e.Status)
			return nil
		}
		_, err = c.orders.ApplyOrderCancelled(ctx, e.Cancellation())
		return err
	default:
		return errs.Mark(errs.New("unexpected topic "+msg.Topic), errPoison)
	}
}

func toLineItems(in []lineItemPayload) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(in))
	for i, it := range in {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrInvalidOrderEvent, "item %d: product id %q", i, it.ProductID)
		}
		items = append(items, order.LineItem{
			ProductID: id,
			Options:   product.Options(it.Options),
			Quantity:  it.Quantity,
		})
	}
	return items, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
