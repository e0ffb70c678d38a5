// Package pricing holds the pure money arithmetic shared by carts and
// orders. Every amount is rounded to two decimal places.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"kirana/internal/models"
)

// MaxQuantity caps a single line item's quantity.
const MaxQuantity = 10000

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineTotal returns rate*quantity rounded to two decimals. A quantity at or
// below zero prices the line at 0; the line itself is kept until the user
// removes it.
func LineTotal(rate, quantity float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return round2(rate * quantity)
}

// GrandTotal sums the line totals, rounded to two decimals. The result does
// not depend on the order of the items.
func GrandTotal(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Total
	}
	return round2(sum)
}

// Normalize recomputes every line total from rate and quantity and returns
// the normalized items together with the grand total. Client-supplied totals
// are discarded.
func Normalize(items []models.LineItem) ([]models.LineItem, float64) {
	out := make([]models.LineItem, len(items))
	for i, it := range items {
		it.Total = LineTotal(it.Rate, it.Quantity)
		out[i] = it
	}
	return out, GrandTotal(out)
}

// ParseQuantity is the forgiving parse for quantity text input: non-numeric
// characters are dropped, only the first decimal point survives, and the
// result is clamped to MaxQuantity. Unparseable input yields 0 rather than
// an error; hard validation happens at checkout.
func ParseQuantity(s string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			b.WriteRune(r)
			seenDot = true
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if v > MaxQuantity {
		return MaxQuantity
	}
	return v
}
