package commands

import (
	"context"
	"log/slog"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdjustStockInput struct {
	ProductID       uuid.UUID
	Options         product.Options
	Delta           int
	ExpectedVersion *int64
	Actor           string
}

type AdminStockCommands interface {
	AdjustStock(ctx context.Context, in AdjustStockInput) (MutationResult, error)
}

type adminStockUseCaseImpl struct {
	uow     shared.UnitOfWork
	mutator *StockMutator
	logger  *slog.Logger
}

func NewAdminStockUseCase(uow shared.UnitOfWork, mutator *StockMutator, logger *slog.Logger) AdminStockCommands {
	return &adminStockUseCaseImpl{uow: uow, mutator: mutator, logger: logger}
}

// AdjustStock is a manual restock or write-off. With ExpectedVersion set, an edit made from a
// stale view fails with ErrVersionConflict instead of overwriting newer stock.
func (a *adminStockUseCaseImpl) AdjustStock(ctx context.Context, in AdjustStockInput) (MutationResult, error) {
	if in.Delta == 0 {
		return MutationResult{}, errs.Wrap(errs.ErrInvalidStockAdjustment, "delta must not be zero")
	}

	var result MutationResult
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		result, err = a.mutator.Mutate(ctx, tx, MutationRequest{
			ProductID:       in.ProductID,
			Options:         in.Options,
			MatchMode:       product.MatchExact,
			QuantityDelta:   in.Delta,
			ExpectedVersion: in.ExpectedVersion,
			Reason:          shared.ReasonAdjust,
			ReferenceID:     in.Actor,
		})
		return err
	})
	if err != nil {
		return MutationResult{}, err
	}

	a.logger.InfoContext(ctx, "stock adjusted by admin",
		"product_id", in.ProductID,
		"actor", in.Actor,
		"delta", in.Delta,
		"quantity", result.NewQuantity,
		"version", result.NewVersion,
	)
	return result, nil
}
