package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is a read-only projection of one ledger position with its debt
// recomputed for display. Err is set for rows whose persisted values could
// not be parsed; such rows carry no usable Loan.
type Row struct {
	Index       int
	Loan        Loan
	CurrentDebt decimal.Decimal
	Elapsed     int // whole calendar months since StartDate
	Err         error
}

// Report holds the debt status view for the whole ledger.
type Report struct {
	AsOf            time.Time
	Rows            []Row
	TotalReceivable decimal.Decimal // sum of CurrentDebt over rows not marked Paid
	PendingCount    int
	PaidCount       int
	Malformed       int
}
