package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "0.00",
		"136000":    "136,000.00",
		"1234567.5": "1,234,567.50",
		"-200":      "-200.00",
		"999.999":   "1,000.00",
		"-0.001":    "0.00",
		"12.3":      "12.30",
	}
	for in, want := range tests {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatMoney(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMoneyWhole(t *testing.T) {
	if got := FormatMoneyWhole(decimal.RequireFromString("186000.4")); got != "186,000" {
		t.Errorf("got %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := map[int]string{-1: "future", 0: "0 months", 1: "1 month", 6: "6 months"}
	for in, want := range tests {
		if got := FormatMonths(in); got != want {
			t.Errorf("FormatMonths(%d) = %q, want %q", in, got, want)
		}
	}
}
