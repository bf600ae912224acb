package readstore

import (
	"context"

	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/infra/repository/converter"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductStockViewQueries interface {
	GetProductByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Product, error)
}

type ProductStockReadStore struct {
	queries ProductStockViewQueries
	db      sqlc.DBTX
}

func NewProductStockReadStore(queries ProductStockViewQueries, db sqlc.DBTX) *ProductStockReadStore {
	return &ProductStockReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductStockReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductStockView, error) {
	row, err := r.queries.GetProductByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	p, err := converter.ProductFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode product", err, infra.KindDBFailure)
	}
	return queries.NewProductStockView(p), nil
}
