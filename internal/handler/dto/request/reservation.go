package request

import (
	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveItemRequest struct {
	ProductID uuid.UUID         `json:"productId" binding:"required"`
	Options   map[string]string `json:"options" binding:"required"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
}

type ReserveStockRequest struct {
	UserID            string               `json:"userId" binding:"required"`
	Items             []ReserveItemRequest `json:"items" binding:"required,min=1,dive"`
	ExpirationMinutes *int                 `json:"expirationMinutes,omitempty" binding:"omitempty,min=1,max=10080"`
}

func (r ReserveStockRequest) ToInput() commands.ReserveStockInput {
	items := make([]commands.ReserveItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.ReserveItemInput{
			ProductID: it.ProductID,
			Options:   product.Options(it.Options),
			Quantity:  it.Quantity,
		}
	}
	return commands.ReserveStockInput{
		UserID:            r.UserID,
		Items:             items,
		ExpirationMinutes: r.ExpirationMinutes,
	}
}
