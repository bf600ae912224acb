package queries

import (
	"context"

	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/pkg/errs"

	"github.com/google/uuid"
)

type ProductStockQueries interface {
	GetStock(ctx context.Context, productID uuid.UUID) (*ProductStockView, error)
}

type ProductStockViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductStockView, error)
}

type productStockQueriesImpl struct {
	repo ProductStockViewRepo
}

func NewProductStockQueries(repo ProductStockViewRepo) ProductStockQueries {
	return &productStockQueriesImpl{repo: repo}
}

func (q *productStockQueriesImpl) GetStock(ctx context.Context, productID uuid.UUID) (*ProductStockView, error) {
	view, err := q.repo.FindByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrProductNotFound, "product %s", productID)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
