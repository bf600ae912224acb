//go:build unit

package product_test

import (
	"testing"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariant(t *testing.T, opts product.Options, qty int) product.Variant {
	t.Helper()
	price, err := product.NewMoney(1999)
	require.NoError(t, err)
	v, err := product.NewVariant(opts, qty, price, nil)
	require.NoError(t, err)
	return v
}

func sampleVariants(t *testing.T) product.Variants {
	t.Helper()
	vs, err := product.NewVariants(
		mustVariant(t, product.Options{"Color": "Black", "Size": "M"}, 5),
		mustVariant(t, product.Options{"Color": "Black", "Size": "L"}, 2),
		mustVariant(t, product.Options{"Color": "White"}, 0),
	)
	require.NoError(t, err)
	return vs
}

func TestVariants_Match(t *testing.T) {
	vs := sampleVariants(t)

	tests := []struct {
		name      string
		requested product.Options
		wantIdx   int
		wantErr   error
	}{
		{
			name:      "完全一致",
			requested: product.Options{"Color": "Black", "Size": "L"},
			wantIdx:   1,
		},
		{
			name:      "値は大文字小文字を区別しない",
			requested: product.Options{"Color": "black", "Size": "m"},
			wantIdx:   0,
		},
		{
			name:      "部分指定はリスト順で最初の一致",
			requested: product.Options{"Color": "BLACK"},
			wantIdx:   0,
		},
		{
			name:      "キーは大文字小文字を区別する",
			requested: product.Options{"color": "Black"},
			wantErr:   errs.ErrVariantNotFound,
		},
		{
			name:      "存在しない値",
			requested: product.Options{"Color": "Red"},
			wantErr:   errs.ErrVariantNotFound,
		},
		{
			name:      "空オプション",
			requested: product.Options{},
			wantErr:   errs.ErrMissingOptions,
		},
		{
			name:      "nilオプション",
			requested: nil,
			wantErr:   errs.ErrMissingOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, v, err := vs.Match(tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, -1, idx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, vs[tt.wantIdx].Quantity(), v.Quantity())
		})
	}
}

func TestVariants_MatchExact(t *testing.T) {
	vs := sampleVariants(t)

	t.Run("同じキー集合なら一致", func(t *testing.T) {
		idx, _, err := vs.MatchExact(product.Options{"Color": "white"})
		require.NoError(t, err)
		assert.Equal(t, 2, idx)
	})

	t.Run("部分指定は一致しない", func(t *testing.T) {
		_, _, err := vs.MatchExact(product.Options{"Size": "M"})
		assert.ErrorIs(t, err, errs.ErrVariantNotFound)
	})

	t.Run("余分なキーは一致しない", func(t *testing.T) {
		_, _, err := vs.MatchExact(product.Options{"Color": "White", "Size": "S"})
		assert.ErrorIs(t, err, errs.ErrVariantNotFound)
	})

	t.Run("空オプション", func(t *testing.T) {
		_, _, err := vs.Find(nil, product.MatchExact)
		assert.ErrorIs(t, err, errs.ErrMissingOptions)
	})
}

func TestVariants_MatchIsDeterministic(t *testing.T) {
	vs := sampleVariants(t)
	req := product.Options{"Color": "Black"}

	first, _, err := vs.Match(req)
	require.NoError(t, err)
	for range 20 {
		idx, _, err := vs.Match(req)
		require.NoError(t, err)
		assert.Equal(t, first, idx)
	}
}
