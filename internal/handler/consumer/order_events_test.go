//go:build unit

package consumer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/handler/consumer"
	"marketplace-catalog/internal/pkg/errs"
	commandsmock "marketplace-catalog/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	createdTopic = "order-created"
	statusTopic  = "order-status-changed"
)

var productID = uuid.MustParse("6f1c2a8e-3d4b-4c1a-9f2e-7a8b9c0d1e2f")

type fakeReader struct {
	msgs chan kafka.Message

	mu        sync.Mutex
	committed []kafka.Message
	closed    bool
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	r := &fakeReader{msgs: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		r.msgs <- m
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commitCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func newConsumer(t *testing.T, reader consumer.MessageReader, backoff time.Duration) (*consumer.OrderEventConsumer, *commandsmock.MockOrderStockCommands) {
	t.Helper()
	ctrl := gomock.NewController(t)
	orders := commandsmock.NewMockOrderStockCommands(ctrl)
	c := consumer.NewOrderEventConsumer(reader, orders, consumer.Config{
		OrderCreatedTopic: createdTopic,
		OrderStatusTopic:  statusTopic,
		MaxAttempts:       3,
		RetryBackoff:      backoff,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c, orders
}

func createdMessage(orderID string) kafka.Message {
	return kafka.Message{
		Topic: createdTopic,
		Value: []byte(`{"orderId":"` + orderID + `","items":[{"productId":"` + productID.String() + `","options":{"Size":"M"},"quantity":2}]}`),
	}
}

func statusMessage(orderID, status string) kafka.Message {
	return kafka.Message{
		Topic: statusTopic,
		Value: []byte(`{"orderId":"` + orderID + `","status":"` + status + `","items":[{"productId":"` + productID.String() + `","options":{"Size":"M"},"quantity":2}]}`),
	}
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	wantItems := []order.LineItem{{ProductID: productID, Options: product.Options{"Size": "M"}, Quantity: 2}}

	t.Run("注文作成イベントを在庫調整に渡す", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		orders.EXPECT().ApplyOrderCreated(gomock.Any(), order.CreatedEvent{OrderID: "o-1", Items: wantItems}).
			Return(true, nil).Times(1)

		assert.True(t, c.Handle(ctx, createdMessage("o-1")))
	})

	t.Run("キャンセルは大文字小文字を区別しない", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		orders.EXPECT().ApplyOrderCancelled(gomock.Any(), order.CancelledEvent{OrderID: "o-2", Items: wantItems}).
			Return(true, nil).Times(1)

		assert.True(t, c.Handle(ctx, statusMessage("o-2", "cancelled")))
	})

	t.Run("キャンセル以外のステータスは無視する", func(t *testing.T) {
		c, _ := newConsumer(t, newFakeReader(), time.Millisecond)
		assert.True(t, c.Handle(ctx, statusMessage("o-3", "SHIPPED")))
	})

	t.Run("壊れたJSONはリトライせずに捨てる", func(t *testing.T) {
		c, _ := newConsumer(t, newFakeReader(), time.Millisecond)
		assert.True(t, c.Handle(ctx, kafka.Message{Topic: createdTopic, Value: []byte("{not json")}))
	})

	t.Run("不正な商品IDは捨てる", func(t *testing.T) {
		c, _ := newConsumer(t, newFakeReader(), time.Millisecond)
		msg := kafka.Message{Topic: createdTopic, Value: []byte(`{"orderId":"o-4","items":[{"productId":"x","quantity":1}]}`)}
		assert.True(t, c.Handle(ctx, msg))
	})

	t.Run("検証エラーはリトライしない", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).
			Return(false, errs.Wrap(errs.ErrInvalidOrderEvent, "no items")).Times(1)

		assert.True(t, c.Handle(ctx, createdMessage("o-5")))
	})

	t.Run("一時的な失敗はリトライで回復する", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		gomock.InOrder(
			orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).Return(false, errs.ErrVersionConflict),
			orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		assert.True(t, c.Handle(ctx, createdMessage("o-6")))
	})

	t.Run("在庫不足などの業務的な拒否はリトライせずにコミットさせる", func(t *testing.T) {
		refusals := []error{
			errs.ErrInsufficientStock,
			errs.ErrProductNotFound,
			errs.ErrVariantNotFound,
			errs.ErrMissingOptions,
		}
		for _, refusal := range refusals {
			c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
			orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).
				Return(false, errs.Wrap(refusal, "order o-7 line 0")).Times(1)

			assert.True(t, c.Handle(ctx, createdMessage("o-7")), refusal.Error())
		}
	})

	t.Run("DB障害は試行回数を超えてもリトライを続ける", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		dbErr := errs.Mark(errs.Wrap(errors.New("connection refused"), "apply order"), errs.ErrDatabaseOperationFailed)
		gomock.InOrder(
			orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).Return(false, dbErr).Times(5),
			orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		assert.True(t, c.Handle(ctx, createdMessage("o-db")))
	})

	t.Run("DB障害のまま停止したらコミットしない", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		calls := 0
		orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, order.CreatedEvent) (bool, error) {
				calls++
				if calls == 4 {
					cancel()
				}
				return false, errs.Wrap(errs.ErrDatabaseOperationFailed, "connection refused")
			}).Times(4)

		assert.False(t, c.Handle(cctx, createdMessage("o-db")))
	})

	t.Run("競合が続いてもコミットしない", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Millisecond)
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		calls := 0
		orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, order.CreatedEvent) (bool, error) {
				calls++
				if calls == 3 {
					cancel()
				}
				return false, errs.ErrVersionConflict
			}).Times(3)

		assert.False(t, c.Handle(cctx, createdMessage("o-10")))
	})

	t.Run("待機中にキャンセルされたらコミットしない", func(t *testing.T) {
		c, orders := newConsumer(t, newFakeReader(), time.Hour)
		cctx, cancel := context.WithCancel(ctx)
		orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, order.CreatedEvent) (bool, error) {
				cancel()
				return false, errors.New("db down")
			}).Times(1)

		assert.False(t, c.Handle(cctx, createdMessage("o-8")))
	})

	t.Run("想定外のトピックは捨てる", func(t *testing.T) {
		c, _ := newConsumer(t, newFakeReader(), time.Millisecond)
		msg := createdMessage("o-9")
		msg.Topic = "payments"
		assert.True(t, c.Handle(ctx, msg))
	})
}

func TestStartStop(t *testing.T) {
	reader := newFakeReader(createdMessage("o-1"), statusMessage("o-1", "CANCELLED"), kafka.Message{Topic: createdTopic, Value: []byte("x")})
	c, orders := newConsumer(t, reader, time.Millisecond)
	orders.EXPECT().ApplyOrderCreated(gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	orders.EXPECT().ApplyOrderCancelled(gomock.Any(), gomock.Any()).Return(true, nil).Times(1)

	c.Start()
	c.Start()

	assert.Eventually(t, func() bool { return reader.commitCount() == 3 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Stop(ctx))

	reader.mu.Lock()
	defer reader.mu.Unlock()
	assert.True(t, reader.closed)
}
