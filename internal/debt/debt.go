// Package debt computes simple-interest loan balances.
package debt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ElapsedMonths returns the calendar-month difference between start and asOf.
// Day of month is ignored: the 28th to the 1st of the next month is one month.
func ElapsedMonths(start, asOf time.Time) int {
	return (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
}

// Calculate returns the amount owed on asOf. Interest is simple and linear in
// whole elapsed months; nothing accrues before the first month boundary.
// Inputs are not validated.
func Calculate(principal decimal.Decimal, start time.Time, monthlyRate, payments decimal.Decimal, asOf time.Time) decimal.Decimal {
	months := ElapsedMonths(start, asOf)
	if months < 1 {
		return principal.Sub(payments)
	}

	interest := principal.
		Mul(monthlyRate.Div(hundred)).
		Mul(decimal.NewFromInt(int64(months)))

	return principal.Add(interest).Sub(payments).Round(2)
}

// ForLoan is Calculate applied to a loan's stored fields.
func ForLoan(l model.Loan, asOf time.Time) decimal.Decimal {
	return Calculate(l.Principal, l.StartDate, l.MonthlyRate, l.Payments, asOf)
}

// StatusFor derives the settlement status from a computed debt.
func StatusFor(owed decimal.Decimal) model.Status {
	if owed.LessThanOrEqual(decimal.Zero) {
		return model.StatusPaid
	}
	return model.StatusPending
}
