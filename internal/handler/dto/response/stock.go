package response

import (
	"time"

	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VariantStockResponse struct {
	Position            int               `json:"position"`
	Options             map[string]string `json:"options"`
	Quantity            int               `json:"quantity"`
	Available           bool              `json:"available"`
	PriceCents          int64             `json:"priceCents"`
	CompareAtPriceCents *int64            `json:"compareAtPriceCents,omitempty"`
}

type ProductStockResponse struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	SoldCount int                    `json:"soldCount"`
	Version   int64                  `json:"version"`
	Variants  []VariantStockResponse `json:"variants"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type StockAdjustmentResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	Position    int       `json:"position"`
	OldQuantity int       `json:"oldQuantity"`
	NewQuantity int       `json:"newQuantity"`
	NewVersion  int64     `json:"version"`
}

func FromProductStockView(v *queries.ProductStockView) (*ProductStockResponse, error) {
	var res ProductStockResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromMutationResult(r commands.MutationResult) StockAdjustmentResponse {
	var res StockAdjustmentResponse
	_ = copier.Copy(&res, &r)
	return res
}
