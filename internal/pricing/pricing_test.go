// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsWorkedExample(t *testing.T) {
	// plan 100.00, add-ons 10.00×2 and 5.00×3, discount −10%
	lines := []Line{
		{Quantity: 2, UnitPrice: 10.00},
		{Quantity: 3, UnitPrice: 5.00},
	}

	got := ComputeTotals(100.00, lines, -10, 0)

	assert.Equal(t, 100.00, got.Subtotal)
	assert.Equal(t, 35.00, got.AddonTotal)
	assert.Equal(t, -13.50, got.DiscountValue)
	assert.Equal(t, 0.0, got.CouponValue)
	assert.Equal(t, 121.50, got.Total)
}

func TestComputeTotalsInvariant(t *testing.T) {
	cases := []struct {
		name        string
		subtotal    float64
		lines       []Line
		discountPct float64
		couponPct   float64
	}{
		{"no discount", 250, []Line{{1, 49.90}}, 0, 0},
		{"full discount", 99.90, nil, -100, 0},
		{"coupon only", 150, []Line{{4, 12.25}}, 0, -15},
		{"stacked discounts", 300, []Line{{2, 50}}, -10, -5},
		{"zero proposal", 0, nil, -50, -50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.subtotal, tc.lines, tc.discountPct, tc.couponPct)
			base := got.Subtotal + got.AddonTotal
			assert.InDelta(t, base+got.DiscountValue+got.CouponValue, got.Total, 0.001)
			assert.LessOrEqual(t, got.DiscountValue, 0.0)
			assert.LessOrEqual(t, got.CouponValue, 0.0)
		})
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	lines := []Line{{Quantity: 3, UnitPrice: 7.77}}

	first := ComputeTotals(123.45, lines, -12.5, -3)
	second := ComputeTotals(123.45, lines, -12.5, -3)

	assert.Equal(t, first, second)
}

func TestComputeTotalsIgnoresZeroQuantityLines(t *testing.T) {
	lines := []Line{
		{Quantity: 0, UnitPrice: 999},
		{Quantity: -1, UnitPrice: 999},
		{Quantity: 2, UnitPrice: 10},
	}

	got := ComputeTotals(50, lines, 0, 0)

	assert.Equal(t, 20.00, got.AddonTotal)
	assert.Equal(t, 70.00, got.Total)
}

func TestNormalizePercent(t *testing.T) {
	assert.Equal(t, -10.0, NormalizePercent(10))
	assert.Equal(t, -10.0, NormalizePercent(-10))
	assert.Equal(t, -100.0, NormalizePercent(-250))
	assert.Equal(t, 0.0, NormalizePercent(0))
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 10.0, ParsePercent("10%"))
	assert.Equal(t, -10.5, ParsePercent("-10,5 %"))
	assert.Equal(t, 0.0, ParsePercent("abc"))
	assert.Equal(t, 0.0, ParsePercent(""))
	assert.Equal(t, 12.0, ParsePercent(" 12 % off"))
}

func TestCouponLookupNeeded(t *testing.T) {
	assert.True(t, CouponLookupNeeded("ABCDEF1234567890"))
	assert.True(t, CouponLookupNeeded("  ABCDEF1234567890  "))
	assert.False(t, CouponLookupNeeded("ABCDEF123456789"))
	assert.False(t, CouponLookupNeeded("ABCDEF12345678901"))
	assert.False(t, CouponLookupNeeded(""))
}
