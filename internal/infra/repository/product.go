package repository

import (
	"context"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/infra/repository/converter"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductWriteQueries interface {
	GetProductByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Product, error)
	CreateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProductParams) (sqlc.Product, error)
	ApplyVariantDelta(ctx context.Context, db sqlc.DBTX, arg sqlc.ApplyVariantDeltaParams) (sqlc.ApplyVariantDeltaRow, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
}

func NewProductRepository(queries ProductWriteQueries) *ProductRepository {
	return &ProductRepository{queries: queries}
}

func (r *ProductRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*product.Product, error) {
	row, err := r.queries.GetProductByID(ctx, tx, id)
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
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, tx sqlc.DBTX, p *product.Product) error {
	params, err := converter.ProductToInfra(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product", err, infra.KindDBFailure)
	}

	if _, err := r.queries.CreateProduct(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

// ApplyVariantDelta runs the conditional UPDATE. No row back means the guard rejected the write.
func (r *ProductRepository) ApplyVariantDelta(ctx context.Context, tx sqlc.DBTX, d shared.VariantDelta) (shared.VariantDeltaResult, error) {
	position, err := converter.ToInt32(d.Position)
	if err != nil {
		return shared.VariantDeltaResult{}, infra.WrapRepoErr("invalid variant position", err, infra.KindDBFailure)
	}
	qty, err := converter.ToInt32(d.QuantityDelta)
	if err != nil {
		return shared.VariantDeltaResult{}, infra.WrapRepoErr("invalid quantity delta", err, infra.KindDBFailure)
	}
	sold, err := converter.ToInt32(d.SoldDelta)
	if err != nil {
		return shared.VariantDeltaResult{}, infra.WrapRepoErr("invalid sold delta", err, infra.KindDBFailure)
	}

	row, err := r.queries.ApplyVariantDelta(ctx, tx, sqlc.ApplyVariantDeltaParams{
		SoldDelta:       sold,
		Position:        position,
		QuantityDelta:   qty,
		ID:              d.ProductID,
		ExpectedVersion: d.ExpectedVersion,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return shared.VariantDeltaResult{Applied: false}, nil
		}
		return shared.VariantDeltaResult{}, infra.WrapRepoErr("failed to apply variant delta", err)
	}

	return shared.VariantDeltaResult{
		Applied:  true,
		Quantity: int(row.Quantity),
		Version:  row.Version,
	}, nil
}
