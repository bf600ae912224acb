package queries

import (
	"time"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"

	"github.com/google/uuid"
)

// VariantStockView represents one sellable variant with its live quantity
type VariantStockView struct {
	Position            int               `json:"position"`
	Options             map[string]string `json:"options"`
	Quantity            int               `json:"quantity"`
	Available           bool              `json:"available"`
	PriceCents          int64             `json:"price_cents"`
	CompareAtPriceCents *int64            `json:"compare_at_price_cents,omitempty"`
}

// ProductStockView carries the version so admin clients can send it back as a precondition
type ProductStockView struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	SoldCount int                `json:"sold_count"`
	Version   int64              `json:"version"`
	Variants  []VariantStockView `json:"variants"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type ReservationItemView struct {
	ProductID uuid.UUID         `json:"product_id"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity"`
}

type ReservationView struct {
	ID        uuid.UUID             `json:"id"`
	UserID    string                `json:"user_id"`
	Items     []ReservationItemView `json:"items"`
	Status    string                `json:"status"`
	ExpiresAt time.Time             `json:"expires_at"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func NewProductStockView(p *product.Product) *ProductStockView {
	variants := make([]VariantStockView, 0, len(p.Variants()))
	for i, v := range p.Variants() {
		view := VariantStockView{
			Position:   i,
			Options:    v.Options(),
			Quantity:   v.Quantity(),
			Available:  v.Available(),
			PriceCents: v.Price().Cents(),
		}
		if c := v.CompareAtPrice(); c != nil {
			cents := c.Cents()
			view.CompareAtPriceCents = &cents
		}
		variants = append(variants, view)
	}
	return &ProductStockView{
		ID:        p.ID(),
		Name:      p.Name(),
		SoldCount: p.SoldCount(),
		Version:   p.Version(),
		Variants:  variants,
		UpdatedAt: p.UpdatedAt(),
	}
}

func NewReservationView(r *reservation.StockReservation) *ReservationView {
	items := make([]ReservationItemView, 0, len(r.Items()))
	for _, it := range r.Items() {
		items = append(items, ReservationItemView{
			ProductID: it.ProductID,
			Options:   it.Options.Clone(),
			Quantity:  it.Quantity,
		})
	}
	return &ReservationView{
		ID:        r.ID(),
		UserID:    r.UserID(),
		Items:     items,
		Status:    r.Status().String(),
		ExpiresAt: r.ExpiresAt(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}
