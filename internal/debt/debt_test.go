package debt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestElapsedMonths(t *testing.T) {
	tests := []struct {
		start, asOf string
		want        int
	}{
		{"2026-10-01", "2026-10-31", 0},
		{"2026-09-28", "2026-10-01", 1},
		{"2026-04-17", "2026-10-17", 6},
		{"2025-12-31", "2026-01-01", 1},
		{"2024-03-15", "2026-10-02", 31},
		{"2026-11-01", "2026-10-17", -1},
	}
	for _, tt := range tests {
		got := ElapsedMonths(mustDate(t, tt.start), mustDate(t, tt.asOf))
		if got != tt.want {
			t.Errorf("ElapsedMonths(%s, %s) = %d, want %d", tt.start, tt.asOf, got, tt.want)
		}
	}
}

func TestCalculate_Scenarios(t *testing.T) {
	asOf := mustDate(t, "2026-10-17")
	tests := []struct {
		name                     string
		principal, rate, payment string
		start                    string
		want                     string
	}{
		{"six months at 6%", "100000", "6", "0", "2026-04-17", "136000"},
		{"same month no interest", "50000", "10", "0", "2026-10-01", "50000"},
		{"settled by payments", "10000", "5", "11500", "2026-07-30", "0"},
		{"overpaid", "1000", "0", "1200", "2026-01-05", "-200"},
		{"rounds to cents", "333.33", "1.5", "0", "2026-09-01", "338.33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(dec(tt.principal), mustDate(t, tt.start), dec(tt.rate), dec(tt.payment), asOf)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("Calculate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalculate_FirstMonthIgnoresRate(t *testing.T) {
	start := mustDate(t, "2026-10-01")
	asOf := mustDate(t, "2026-10-31")
	for _, rate := range []string{"0", "5", "37.5", "100"} {
		got := Calculate(dec("1234.567"), start, dec(rate), dec("0.007"), asOf)
		if !got.Equal(dec("1234.56")) {
			t.Errorf("rate %s: got %s, want exact principal - payments 1234.56", rate, got)
		}
	}
}

func TestCalculate_LinearInMonths(t *testing.T) {
	start := mustDate(t, "2025-01-20")
	principal, rate, paid := dec("2500"), dec("3"), dec("400")
	for m := 1; m <= 24; m++ {
		asOf := start.AddDate(0, m, 0)
		want := principal.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred).Mul(decimal.NewFromInt(int64(m))))).Sub(paid).Round(2)
		if got := Calculate(principal, start, rate, paid, asOf); !got.Equal(want) {
			t.Fatalf("m=%d: got %s, want %s", m, got, want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	if s := StatusFor(dec("0")); s != model.StatusPaid {
		t.Errorf("StatusFor(0) = %s, want Paid", s)
	}
	if s := StatusFor(dec("-0.01")); s != model.StatusPaid {
		t.Errorf("StatusFor(-0.01) = %s, want Paid", s)
	}
	if s := StatusFor(dec("0.01")); s != model.StatusPending {
		t.Errorf("StatusFor(0.01) = %s, want Pending", s)
	}
}
