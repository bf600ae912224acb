//go:build unit

package product_test

import (
	"testing"
	"time"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	price, _ := product.NewMoney(100)

	t.Run("負の在庫はNG", func(t *testing.T) {
		_, err := product.NewVariant(product.Options{"Size": "M"}, -1, price, nil)
		assert.ErrorIs(t, err, product.ErrNegativeQuantity)
	})

	t.Run("オプションなしはNG", func(t *testing.T) {
		_, err := product.NewVariant(nil, 1, price, nil)
		assert.ErrorIs(t, err, errs.ErrMissingOptions)
	})

	t.Run("在庫0は販売不可", func(t *testing.T) {
		v, err := product.NewVariant(product.Options{"Size": "M"}, 0, price, nil)
		require.NoError(t, err)
		assert.False(t, v.Available())
	})

	t.Run("Optionsはコピーを返す", func(t *testing.T) {
		v, err := product.NewVariant(product.Options{"Size": "M"}, 1, price, nil)
		require.NoError(t, err)
		opts := v.Options()
		opts["Size"] = "XL"
		assert.Equal(t, "M", v.Options()["Size"])
	})
}

func TestNewVariants_RejectsDuplicateOptions(t *testing.T) {
	_, err := product.NewVariants(
		mustVariant(t, product.Options{"Color": "Black"}, 1),
		mustVariant(t, product.Options{"Color": "BLACK"}, 3),
	)
	assert.ErrorIs(t, err, product.ErrDuplicateVariant)
}

func TestNewMoney(t *testing.T) {
	_, err := product.NewMoney(-1)
	assert.ErrorIs(t, err, product.ErrNegativePrice)
}

func TestProduct_PlanDelta(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := product.ReconstructProduct(uuid.New(), "Tee", sampleVariants(t), 4, 7, now, now)

	t.Run("減算", func(t *testing.T) {
		change, err := p.PlanDelta(0, -3, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, change.OldQuantity)
		assert.Equal(t, 2, change.NewQuantity)
		assert.Equal(t, int64(7), change.ExpectedVersion)
		assert.True(t, change.Available())
	})

	t.Run("ちょうど0まで減算できる", func(t *testing.T) {
		change, err := p.PlanDelta(1, -2, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, change.NewQuantity)
		assert.False(t, change.Available())
	})

	t.Run("在庫不足", func(t *testing.T) {
		_, err := p.PlanDelta(1, -3, 0)
		assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	})

	t.Run("販売数は0で下限", func(t *testing.T) {
		change, err := p.PlanDelta(0, 10, -10)
		require.NoError(t, err)
		assert.Equal(t, 0, change.NewSoldCount)
		assert.Equal(t, -4, change.SoldDelta)
	})

	t.Run("範囲外の位置", func(t *testing.T) {
		_, err := p.PlanDelta(3, 1, 0)
		assert.ErrorIs(t, err, product.ErrVariantOutOfRange)
	})

	t.Run("スナップショットは変更されない", func(t *testing.T) {
		_, err := p.PlanDelta(0, -1, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Variants()[0].Quantity())
		assert.Equal(t, 4, p.SoldCount())
		assert.Equal(t, int64(7), p.Version())
	})
}
