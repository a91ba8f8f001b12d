// Package model defines domain types for lendbook loans and reports.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and user-facing calendar date format.
const DateLayout = "2006-01-02"

// Status is the settlement snapshot persisted with each loan.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// ParseStatus maps persisted status text to a Status. Empty text reads as
// Pending. Unrecognized text is kept as-is with ok false; it counts as not
// paid, so only an explicit paid marker settles a loan.
func ParseStatus(s string) (st Status, ok bool) {
	switch s {
	case string(StatusPaid), "paid", "PAID", "Pagado":
		return StatusPaid, true
	case "", string(StatusPending), "pending", "PENDING", "Pendiente":
		return StatusPending, true
	default:
		return Status(s), false
	}
}

// Loan is one borrower loan. Identity is the loan's position in the ledger.
type Loan struct {
	Name        string
	Principal   decimal.Decimal
	StartDate   time.Time
	MonthlyRate decimal.Decimal // percent per elapsed month, 0-100
	Payments    decimal.Decimal // cumulative
	Status      Status
}

// IsPaid reports whether the persisted snapshot marks the loan settled.
func (l Loan) IsPaid() bool {
	return l.Status == StatusPaid
}

// Date truncates t to a calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
