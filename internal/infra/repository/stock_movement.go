package repository

import (
	"context"

	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/infra/repository/converter"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"
	"marketplace-catalog/internal/usecase/shared"
)

type StockMovementWriteQueries interface {
	InsertStockMovement(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertStockMovementParams) error
}

type StockMovementRepository struct {
	queries StockMovementWriteQueries
}

func NewStockMovementRepository(queries StockMovementWriteQueries) *StockMovementRepository {
	return &StockMovementRepository{queries: queries}
}

func (r *StockMovementRepository) Record(ctx context.Context, tx sqlc.DBTX, m shared.StockMovement) error {
	opts, err := converter.OptionsToJSON(m.Options)
	if err != nil {
		return infra.WrapRepoErr("failed to encode movement options", err, infra.KindDBFailure)
	}
	position, err := converter.ToInt32(m.Position)
	if err != nil {
		return infra.WrapRepoErr("invalid movement position", err, infra.KindDBFailure)
	}
	qty, err := converter.ToInt32(m.QuantityDelta)
	if err != nil {
		return infra.WrapRepoErr("invalid movement quantity", err, infra.KindDBFailure)
	}
	sold, err := converter.ToInt32(m.SoldDelta)
	if err != nil {
		return infra.WrapRepoErr("invalid movement sold delta", err, infra.KindDBFailure)
	}

	err = r.queries.InsertStockMovement(ctx, tx, sqlc.InsertStockMovementParams{
		ProductID:       m.ProductID,
		VariantPosition: position,
		Options:         opts,
		QuantityDelta:   qty,
		SoldDelta:       sold,
		Reason:          string(m.Reason),
		ReferenceID:     pgconv.OptionalText(m.ReferenceID),
		Outcome:         string(m.Outcome),
		Error:           pgconv.ErrorText(m.Err),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record stock movement", err)
	}
	return nil
}
