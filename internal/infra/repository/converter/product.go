package converter

import (
	"encoding/json"
	"fmt"
	"math"

	"marketplace-catalog/internal/domain/product"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"
)

// variantDoc is the JSONB shape of one element of products.variants.
// quantity and available are also written by the ApplyVariantDelta query.
type variantDoc struct {
	Options             map[string]string `json:"options"`
	Quantity            int               `json:"quantity"`
	Available           bool              `json:"available"`
	PriceCents          int64             `json:"priceCents"`
	CompareAtPriceCents *int64            `json:"compareAtPriceCents,omitempty"`
}

func ProductFromInfra(row sqlc.Product) (*product.Product, error) {
	var docs []variantDoc
	if err := json.Unmarshal(row.Variants, &docs); err != nil {
		return nil, fmt.Errorf("decode variants of product %s: %w", row.ID, err)
	}

	variants := make(product.Variants, 0, len(docs))
	for i, d := range docs {
		v, err := variantFromDoc(d)
		if err != nil {
			return nil, fmt.Errorf("variant %d of product %s: %w", i, row.ID, err)
		}
		variants = append(variants, v)
	}

	return product.ReconstructProduct(
		row.ID,
		row.Name,
		variants,
		int(row.SoldCount),
		row.Version,
		pgconv.Time(row.CreatedAt),
		pgconv.Time(row.UpdatedAt),
	), nil
}

func ProductToInfra(p *product.Product) (sqlc.CreateProductParams, error) {
	docs := make([]variantDoc, 0, len(p.Variants()))
	for _, v := range p.Variants() {
		docs = append(docs, variantToDoc(v))
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return sqlc.CreateProductParams{}, err
	}

	sold, err := ToInt32(p.SoldCount())
	if err != nil {
		return sqlc.CreateProductParams{}, err
	}

	return sqlc.CreateProductParams{
		ID:        p.ID(),
		Name:      p.Name(),
		Variants:  raw,
		SoldCount: sold,
	}, nil
}

func OptionsToJSON(o product.Options) ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

func OptionsFromJSON(raw []byte) (product.Options, error) {
	var o product.Options
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	return o, nil
}

func ToInt32(v int) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("value out of int32 range: %d", v)
	}
	return int32(v), nil
}

func variantFromDoc(d variantDoc) (product.Variant, error) {
	price, err := product.NewMoney(d.PriceCents)
	if err != nil {
		return product.Variant{}, err
	}
	var compareAt *product.Money
	if d.CompareAtPriceCents != nil {
		m, err := product.NewMoney(*d.CompareAtPriceCents)
		if err != nil {
			return product.Variant{}, err
		}
		compareAt = &m
	}
	return product.NewVariant(product.Options(d.Options), d.Quantity, price, compareAt)
}

func variantToDoc(v product.Variant) variantDoc {
	d := variantDoc{
		Options:    v.Options(),
		Quantity:   v.Quantity(),
		Available:  v.Available(),
		PriceCents: v.Price().Cents(),
	}
	if c := v.CompareAtPrice(); c != nil {
		cents := c.Cents()
		d.CompareAtPriceCents = &cents
	}
	return d
}
