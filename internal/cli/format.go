// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

// FormatMoney formats an amount with thousands separators and two decimals.
// e.g., 1234567.5 -> "1,234,567.50"
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return d.StringFixed(2)
	}

	out := humanize.Comma(n) + "." + frac
	if d.IsNegative() && !d.Round(2).IsZero() {
		return "-" + out
	}
	return out
}

// FormatMoneyWhole formats an amount rounded to whole units.
// e.g., 186000.4 -> "186,000"
func FormatMoneyWhole(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatRate formats a monthly percentage rate.
func FormatRate(r decimal.Decimal) string {
	return r.String() + "%/mo"
}

// FormatDate formats a calendar date the way the ledger stores it.
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// FormatMonths formats an elapsed-month count, e.g. 1 -> "1 month".
func FormatMonths(m int) string {
	if m < 0 {
		return "future"
	}
	if m == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", m)
}

// FormatAge formats how long ago t was relative to now.
func FormatAge(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
