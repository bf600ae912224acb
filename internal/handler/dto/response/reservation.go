package response

import (
	"time"

	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationItemResponse struct {
	ProductID uuid.UUID         `json:"productId"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity"`
}

type ReservationResponse struct {
	ID        uuid.UUID                 `json:"id"`
	UserID    string                    `json:"userId"`
	Items     []ReservationItemResponse `json:"items"`
	Status    string                    `json:"status"`
	ExpiresAt time.Time                 `json:"expiresAt"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

type ExpireSummaryResponse struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var res ReservationResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromExpireSummary(s commands.ExpireSummary) ExpireSummaryResponse {
	var res ExpireSummaryResponse
	_ = copier.Copy(&res, &s)
	return res
}
