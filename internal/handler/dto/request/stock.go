package request

import (
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/google/uuid"
)

// AdjustStockRequest: delta is required and therefore non-zero.
type AdjustStockRequest struct {
	Options         map[string]string `json:"options" binding:"required"`
	Delta           int               `json:"delta" binding:"required"`
	ExpectedVersion *int64            `json:"expectedVersion,omitempty" binding:"omitempty,min=0"`
}

func (r AdjustStockRequest) ToInput(productID uuid.UUID, actor string) commands.AdjustStockInput {
	return commands.AdjustStockInput{
		ProductID:       productID,
		Options:         product.Options(r.Options),
		Delta:           r.Delta,
		ExpectedVersion: r.ExpectedVersion,
		Actor:           actor,
	}
}
