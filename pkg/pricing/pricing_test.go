package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDiscountPercent(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		percent float64
		want    float64
		wantOK  bool
	}{
		{
			name:    "Quarter off",
			price:   100,
			percent: 25,
			want:    75.00,
			wantOK:  true,
		},
		{
			name:    "Percent above 100 clamps to full discount",
			price:   100,
			percent: 150,
			want:    0.00,
			wantOK:  true,
		},
		{
			name:    "Negative percent clamps to no discount",
			price:   80,
			percent: -10,
			want:    80.00,
			wantOK:  true,
		},
		{
			name:    "Zero price is not discountable",
			price:   0,
			percent: 50,
			wantOK:  false,
		},
		{
			name:    "Negative price is not discountable",
			price:   -5,
			percent: 10,
			wantOK:  false,
		},
		{
			name:    "NaN price is not discountable",
			price:   math.NaN(),
			percent: 10,
			wantOK:  false,
		},
		{
			name:    "Rounds to two decimals",
			price:   9.99,
			percent: 33,
			want:    6.69,
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ApplyDiscountPercent(tt.price, tt.percent)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestApplyDiscountPercent_Idempotent(t *testing.T) {
	first, ok1 := ApplyDiscountPercent(49.95, 15)
	second, ok2 := ApplyDiscountPercent(49.95, 15)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestNormalizeSalePrice(t *testing.T) {
	sale := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		price     float64
		salePrice *float64
		want      *float64
	}{
		{
			name:      "Valid sale price kept",
			price:     50,
			salePrice: sale(40),
			want:      sale(40.00),
		},
		{
			name:      "Sale price above base dropped",
			price:     50,
			salePrice: sale(60),
			want:      nil,
		},
		{
			name:      "Sale price equal to base dropped",
			price:     50,
			salePrice: sale(50),
			want:      nil,
		},
		{
			name:      "Missing sale price dropped",
			price:     50,
			salePrice: nil,
			want:      nil,
		},
		{
			name:      "Non-finite base dropped",
			price:     math.Inf(1),
			salePrice: sale(10),
			want:      nil,
		},
		{
			name:      "Rounded to two decimals",
			price:     100,
			salePrice: sale(33.333),
			want:      sale(33.33),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSalePrice(tt.price, tt.salePrice)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestDiscountPercentDisplay(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		salePrice float64
		want      *int
	}{
		{
			name:      "Quarter off",
			price:     80,
			salePrice: 60,
			want:      intPtr(25),
		},
		{
			name:      "No sale when equal",
			price:     80,
			salePrice: 80,
			want:      nil,
		},
		{
			name:      "No sale when above base",
			price:     80,
			salePrice: 90,
			want:      nil,
		},
		{
			name:      "No sale on zero price",
			price:     0,
			salePrice: 10,
			want:      nil,
		},
		{
			name:      "Rounds to nearest integer",
			price:     90,
			salePrice: 60,
			want:      intPtr(33),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountPercentDisplay(tt.price, tt.salePrice)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "40.00", FormatAmount(40))
	assert.Equal(t, "75.00", FormatAmount(75.004))
	assert.Equal(t, "0.10", FormatAmount(0.1))
}

func intPtr(v int) *int {
	return &v
}
