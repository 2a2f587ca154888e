package salary

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
)

func TestEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bounds models.SalaryBounds
		want   float64
		ok     bool
	}{
		{"both missing", models.SalaryBounds{Currency: "RUR"}, 0, false},
		{"from only", models.SalaryBounds{From: 100000, Currency: "RUR"}, 120000, true},
		{"to only", models.SalaryBounds{To: 100000, Currency: "RUR"}, 80000, true},
		{"both", models.SalaryBounds{From: 100000, To: 200000, Currency: "RUR"}, 150000, true},
		{"json floats", models.SalaryBounds{From: float64(50000), To: float64(70000), Currency: "RUR"}, 60000, true},
		{"numeric strings", models.SalaryBounds{From: "90000", To: " 110000 ", Currency: "RUR"}, 100000, true},
		{"json number", models.SalaryBounds{From: json.Number("1000"), Currency: "RUR"}, 1200, true},
		{"non-numeric from falls back to to", models.SalaryBounds{From: "negotiable", To: 100000, Currency: "RUR"}, 80000, true},
		{"non-numeric both", models.SalaryBounds{From: "a", To: "b", Currency: "RUR"}, 0, false},
		{"zero to extrapolates from", models.SalaryBounds{From: 100000, To: 0, Currency: "RUR"}, 120000, true},
		{"zero from extrapolates to", models.SalaryBounds{From: 0, To: 100000, Currency: "RUR"}, 80000, true},
		{"both zero", models.SalaryBounds{From: 0, To: 0, Currency: "RUR"}, 0, false},
		{"negative", models.SalaryBounds{From: -5, Currency: "RUR"}, 0, false},
		{"bool ignored", models.SalaryBounds{From: true, Currency: "RUR"}, 0, false},
		{"currency mismatch", models.SalaryBounds{From: 100000, To: 200000, Currency: "USD"}, 0, false},
		{"empty currency", models.SalaryBounds{From: 100000}, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Estimate(tt.bounds, "RUR")
			require.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEstimateCurrencyMismatchIgnoresBounds(t *testing.T) {
	t.Parallel()

	for _, b := range []models.SalaryBounds{
		{From: 1, Currency: "usd"},
		{To: 1, Currency: "EUR"},
		{From: 1, To: 2, Currency: "rub"},
	} {
		_, ok := Estimate(b, "RUR")
		assert.False(t, ok, "bounds %+v", b)
	}
}

func TestEstimateExtrapolationRules(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{1, 999.5, 45000, 1e7} {
		got, ok := Estimate(models.SalaryBounds{From: v, Currency: "rub"}, "rub")
		require.True(t, ok)
		assert.InDelta(t, v*1.2, got, 1e-6)

		got, ok = Estimate(models.SalaryBounds{To: v, Currency: "rub"}, "rub")
		require.True(t, ok)
		assert.InDelta(t, v*0.8, got, 1e-6)

		got, ok = Estimate(models.SalaryBounds{From: v, To: v * 3, Currency: "rub"}, "rub")
		require.True(t, ok)
		assert.InDelta(t, v*2, got, 1e-6)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	_, ok := ParseAmount(math.NaN())
	assert.False(t, ok)
	_, ok = ParseAmount(math.Inf(1))
	assert.False(t, ok)
	_, ok = ParseAmount("")
	assert.False(t, ok)

	v, ok := ParseAmount(int64(42))
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}
