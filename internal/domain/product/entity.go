package product

import (
	"errors"
	"time"

	"marketplace-catalog/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrDuplicateVariant  = errors.New("two variants share the same options")
	ErrVariantOutOfRange = errors.New("variant position out of range")
)

type Variant struct {
	options        Options
	quantity       int
	price          Money
	compareAtPrice *Money
}

func NewVariant(options Options, quantity int, price Money, compareAtPrice *Money) (Variant, error) {
	if options.IsEmpty() {
		return Variant{}, errs.ErrMissingOptions
	}
	if quantity < 0 {
		return Variant{}, ErrNegativeQuantity
	}
	return Variant{
		options:        options.Clone(),
		quantity:       quantity,
		price:          price,
		compareAtPrice: compareAtPrice,
	}, nil
}

func (v Variant) Options() Options { return v.options.Clone() }
func (v Variant) Quantity() int { return v.quantity }
func (v Variant) Price() Money { return v.price }
func (v Variant) CompareAtPrice() *Money { return v.compareAtPrice }
func (v Variant) Available() bool { return v.quantity > 0 }
func (v Variant) Matches(req Options) bool { return v.options.Contains(req) }

// Variants keeps insertion order; matching walks it front to back.
type Variants []Variant

func NewVariants(vs ...Variant) (Variants, error) {
	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		k := v.options.Key()
		if _, dup := seen[k]; dup {
			return nil, ErrDuplicateVariant
		}
		seen[k] = struct{}{}
	}
	return Variants(vs), nil
}

type Product struct {
	id        uuid.UUID
	name      string
	variants  Variants
	soldCount int
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

func NewProduct(name string, variants Variants) (*Product, error) {
	if _, err := NewVariants(variants...); err != nil {
		return nil, err
	}
	return &Product{
		id:       uuid.New(),
		name:     name,
		variants: variants,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name string,
	variants Variants,
	soldCount int,
	version int64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		name:      name,
		variants:  variants,
		soldCount: soldCount,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p *Product) ID() uuid.UUID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Variants() Variants { return p.variants }
func (p *Product) SoldCount() int { return p.soldCount }
func (p *Product) Version() int64 { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// StockChange is the outcome of planning a delta against one snapshot of a product.
// It is only valid while the stored version still equals ExpectedVersion.
type StockChange struct {
	Position        int
	OldQuantity     int
	NewQuantity     int
	SoldDelta       int
	NewSoldCount    int
	ExpectedVersion int64
}

func (c StockChange) Available() bool { return c.NewQuantity > 0 }

// PlanDelta computes the effect of adding quantityDelta to one variant and soldDelta to the
// sold counter. Quantity may never go negative; the sold counter is floored at zero.
func (p *Product) PlanDelta(position, quantityDelta, soldDelta int) (StockChange, error) {
	if position < 0 || position >= len(p.variants) {
		return StockChange{}, ErrVariantOutOfRange
	}
	current := p.variants[position].quantity
	next := current + quantityDelta
	if next < 0 {
		return StockChange{}, errs.ErrInsufficientStock
	}

	sold := p.soldCount + soldDelta
	if sold < 0 {
		sold = 0
	}

	return StockChange{
		Position:        position,
		OldQuantity:     current,
		NewQuantity:     next,
		SoldDelta:       sold - p.soldCount,
		NewSoldCount:    sold,
		ExpectedVersion: p.version,
	}, nil
}
