package pricing

import (
	"math"
	"strconv"
)

// ApplyDiscountPercent computes the sale price for a base price and a
// discount percentage. The percentage is clamped into [0, 100] before use.
// ok is false when the base price is zero, negative, or not a finite number,
// in which case no discount is applicable and the sale price field should be
// left empty. The result is rounded to 2 decimal places and the function is
// idempotent for identical inputs.
func ApplyDiscountPercent(price, percent float64) (float64, bool) {
	if !isFinite(price) || price <= 0 {
		return 0, false
	}
	if !isFinite(percent) {
		percent = 0
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	sale := price * (1 - percent/100)
	if sale < 0 {
		sale = 0
	}
	return round2(sale), true
}

// NormalizeSalePrice decides what sale price is actually persisted on
// submission. A sale price that is missing, not finite, or not strictly less
// than the base price is dropped (nil): a "sale" that is not cheaper than the
// base price is not a sale. Otherwise the value is rounded to 2 decimals.
func NormalizeSalePrice(price float64, salePrice *float64) *float64 {
	if salePrice == nil {
		return nil
	}
	if !isFinite(price) || !isFinite(*salePrice) {
		return nil
	}
	if *salePrice >= price {
		return nil
	}
	normalized := round2(*salePrice)
	return &normalized
}

// DiscountPercentDisplay returns the rounded discount percentage implied by a
// price/sale-price pair, or nil when there is no effective sale (rendered as
// a dash in the back office).
func DiscountPercentDisplay(price, salePrice float64) *int {
	if !isFinite(price) || !isFinite(salePrice) {
		return nil
	}
	if price <= 0 || salePrice <= 0 || salePrice >= price {
		return nil
	}
	percent := int(math.Round((1 - salePrice/price) * 100))
	return &percent
}

// FormatAmount renders an amount with exactly 2 fractional digits.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
