//go:build unit || e2e

package builder

import (
	"time"

	reqdto "marketplace-catalog/internal/handler/dto/request"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/google/uuid"
)

type StockBuilder struct {
	ProductID uuid.UUID
	Name      string
	Options   map[string]string
	Quantity  int
	Delta     int
	Version   int64
	UpdatedAt time.Time
}

func NewStockBuilder() *StockBuilder {
	return &StockBuilder{
		ProductID: uuid.New(),
		Name:      "Organic Cotton Tee",
		Options:   map[string]string{"Size": "M", "Color": "Black"},
		Quantity:  5,
		Delta:     3,
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StockBuilder) With(mutate func(*StockBuilder)) *StockBuilder {
	mutate(s)
	return s
}

func (s *StockBuilder) BuildView() *queries.ProductStockView {
	return &queries.ProductStockView{
		ID:      s.ProductID,
		Name:    s.Name,
		Version: s.Version,
		Variants: []queries.VariantStockView{
			{
				Position:   0,
				Options:    s.Options,
				Quantity:   s.Quantity,
				Available:  s.Quantity > 0,
				PriceCents: 1999,
			},
		},
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *StockBuilder) BuildAdjustRequestDTO() reqdto.AdjustStockRequest {
	return reqdto.AdjustStockRequest{
		Options: s.Options,
		Delta:   s.Delta,
	}
}

func (s *StockBuilder) BuildMutationResult() commands.MutationResult {
	return commands.MutationResult{
		ProductID:   s.ProductID,
		Position:    0,
		OldQuantity: s.Quantity,
		NewQuantity: s.Quantity + s.Delta,
		NewVersion:  s.Version + 1,
	}
}
