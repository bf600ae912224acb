//go:build unit || e2e

package builder

import (
	"time"

	reqdto "marketplace-catalog/internal/handler/dto/request"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID                uuid.UUID
	UserID            string
	ProductID         uuid.UUID
	Options           map[string]string
	Quantity          int
	Status            string
	ExpirationMinutes *int
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:        uuid.New(),
		UserID:    "user-1",
		ProductID: uuid.New(),
		Options:   map[string]string{"Size": "M", "Color": "Black"},
		Quantity:  2,
		Status:    "pending",
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildRequestDTO() reqdto.ReserveStockRequest {
	return reqdto.ReserveStockRequest{
		UserID: r.UserID,
		Items: []reqdto.ReserveItemRequest{
			{ProductID: r.ProductID, Options: r.Options, Quantity: r.Quantity},
		},
		ExpirationMinutes: r.ExpirationMinutes,
	}
}

func (r *ReservationBuilder) BuildInput() commands.ReserveStockInput {
	return r.BuildRequestDTO().ToInput()
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:     r.ID,
		UserID: r.UserID,
		Items: []queries.ReservationItemView{
			{ProductID: r.ProductID, Options: r.Options, Quantity: r.Quantity},
		},
		Status:    r.Status,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.CreatedAt,
	}
}
