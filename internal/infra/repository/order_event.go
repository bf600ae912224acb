package repository

import (
	"context"

	"marketplace-catalog/internal/domain/order"
	"marketplace-catalog/internal/infra"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
)

type OrderEventWriteQueries interface {
	MarkOrderEventProcessed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOrderEventProcessedParams) (int64, error)
}

type OrderEventRepository struct {
	queries OrderEventWriteQueries
}

func NewOrderEventRepository(queries OrderEventWriteQueries) *OrderEventRepository {
	return &OrderEventRepository{queries: queries}
}

func (r *OrderEventRepository) MarkProcessed(ctx context.Context, tx sqlc.DBTX, orderID string, eventType order.EventType) (bool, error) {
	n, err := r.queries.MarkOrderEventProcessed(ctx, tx, sqlc.MarkOrderEventProcessedParams{
		OrderID:   orderID,
		EventType: string(eventType),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order event processed", err)
	}
	return n == 1, nil
}
