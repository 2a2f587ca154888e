// Package salary turns a raw salary fork into a single representative value.
package salary

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
)

const (
	// Extrapolation factors for a fork with only one side specified.
	fromOnlyFactor = 1.2
	toOnlyFactor   = 0.8
)

// Estimate predicts a salary for the given bounds. The second return value is
// false when the salary is unusable: the currency differs from expected, or
// neither bound is a positive number.
func Estimate(b models.SalaryBounds, expectedCurrency string) (float64, bool) {
	if b.Currency != expectedCurrency {
		return 0, false
	}

	from, hasFrom := ParseAmount(b.From)
	to, hasTo := ParseAmount(b.To)

	switch {
	case hasFrom && hasTo:
		return (from + to) / 2, true
	case hasFrom:
		return from * fromOnlyFactor, true
	case hasTo:
		return to * toOnlyFactor, true
	default:
		return 0, false
	}
}

// ParseAmount converts a raw bound into a positive amount. Missing, zero,
// negative and non-numeric values all report false.
func ParseAmount(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
