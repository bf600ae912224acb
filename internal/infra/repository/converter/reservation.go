package converter

import (
	"encoding/json"
	"fmt"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type itemDoc struct {
	ProductID uuid.UUID         `json:"productId"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity"`
}

func ReservationToInfra(r *reservation.StockReservation) (sqlc.CreateStockReservationParams, error) {
	docs := make([]itemDoc, 0, len(r.Items()))
	for _, it := range r.Items() {
		docs = append(docs, itemDoc{ProductID: it.ProductID, Options: it.Options, Quantity: it.Quantity})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return sqlc.CreateStockReservationParams{}, err
	}

	return sqlc.CreateStockReservationParams{
		ID:        r.ID(),
		UserID:    r.UserID(),
		Items:     raw,
		Status:    r.Status().String(),
		ExpiresAt: pgconv.Timestamptz(r.ExpiresAt()),
		CreatedAt: pgconv.Timestamptz(r.CreatedAt()),
		UpdatedAt: pgconv.Timestamptz(r.UpdatedAt()),
	}, nil
}

func ReservationFromInfra(row sqlc.StockReservation) (*reservation.StockReservation, error) {
	var docs []itemDoc
	if err := json.Unmarshal(row.Items, &docs); err != nil {
		return nil, fmt.Errorf("decode items of reservation %s: %w", row.ID, err)
	}
	items := make([]reservation.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, reservation.Item{
			ProductID: d.ProductID,
			Options:   product.Options(d.Options),
			Quantity:  d.Quantity,
		})
	}

	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructStockReservation(
		row.ID,
		row.UserID,
		items,
		status,
		pgconv.Time(row.ExpiresAt),
		pgconv.Time(row.CreatedAt),
		pgconv.Time(row.UpdatedAt),
	), nil
}
