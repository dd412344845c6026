// internal/pricing/pricing.go
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// CouponCodeLength is the exact length a coupon code must have before a
// catalog lookup is attempted. Anything else resolves to zero discount
// without touching the database.
const CouponCodeLength = 16

// MinimumTotal is the sanity floor a proposal total must exceed before it can
// be submitted.
const MinimumTotal = 5.0

// Line is one selected add-on: quantity times the unit price captured at
// selection time.
type Line struct {
	Quantity  int
	UnitPrice float64
}

// Totals is the full monetary breakdown of a proposal.
//
// Discount percentages are non-positive values in [-100, 0], so the derived
// currency values are ≤ 0 and the total is always
// base + DiscountValue + CouponValue where base = Subtotal + AddonTotal.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	AddonTotal    float64 `json:"total_addons"`
	DiscountValue float64 `json:"desconto_valor"`
	CouponValue   float64 `json:"cupom_desconto_valor"`
	Total         float64 `json:"total"`
}

// ComputeTotals derives the complete breakdown from current state. It is pure
// and idempotent: every call recomputes from its inputs, so the result does
// not depend on the order in which dependent fields changed.
func ComputeTotals(subtotal float64, lines []Line, discountPct, couponPct float64) Totals {
	addonTotal := 0.0
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		addonTotal += float64(l.Quantity) * l.UnitPrice
	}
	addonTotal = Round(addonTotal)

	base := subtotal + addonTotal
	discountValue := Round(base * NormalizePercent(discountPct) / 100)
	couponValue := Round(base * NormalizePercent(couponPct) / 100)

	return Totals{
		Subtotal:      Round(subtotal),
		AddonTotal:    addonTotal,
		DiscountValue: discountValue,
		CouponValue:   couponValue,
		Total:         Round(base + discountValue + couponValue),
	}
}

// NormalizePercent clamps a discount percentage to the documented [-100, 0]
// convention. Positive inputs are treated as their price-reducing form.
func NormalizePercent(pct float64) float64 {
	if pct > 0 {
		pct = -pct
	}
	if pct < -100 {
		pct = -100
	}
	return pct
}

// ParsePercent strips everything but digits, sign and separators from a
// user-typed discount string ("10%", "-10,5 %") and parses the remainder.
func ParsePercent(raw string) float64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// CouponLookupNeeded reports whether the trimmed coupon code has the exact
// length that warrants a lookup.
func CouponLookupNeeded(code string) bool {
	return len(strings.TrimSpace(code)) == CouponCodeLength
}

// Round rounds a monetary amount to cents.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
