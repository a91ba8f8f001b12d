// Package store writes ledger reports to a SQLite database for ad-hoc
// querying. The CSV ledger stays the source of truth; each export replaces
// the database contents.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/lendbook/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Export is a SQLite database holding the latest ledger report.
type Export struct {
	db *sql.DB
}

// ExportedLoan is one row read back from the loans table.
type ExportedLoan struct {
	Position    int
	Name        string
	Status      string
	CurrentDebt string
	Malformed   string
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Export, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Export{db: db}, nil
}

// Close closes the export database.
func (e *Export) Close() error {
	return e.db.Close()
}

// WriteReport replaces the stored report with rep in one transaction.
func (e *Export) WriteReport(ledgerFile string, rep model.Report) error {
	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM loans"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO loans
		(position, name, principal, start_date, monthly_rate, cumulative_payments,
		 status, elapsed_months, current_debt, current_debt_num, malformed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rep.Rows {
		if r.Err != nil {
			_, err = stmt.Exec(r.Index, r.Loan.Name, nil, nil, nil, nil, nil, nil, nil, nil, r.Err.Error())
		} else {
			l := r.Loan
			_, err = stmt.Exec(r.Index, l.Name, l.Principal.String(), l.StartDate.Format(model.DateLayout),
				l.MonthlyRate.String(), l.Payments.String(), string(l.Status), r.Elapsed,
				r.CurrentDebt.StringFixed(2), r.CurrentDebt.InexactFloat64(), nil)
		}
		if err != nil {
			return fmt.Errorf("inserting position %d: %w", r.Index, err)
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO report
		(id, as_of, ledger_file, total_receivable, pending_count, paid_count, malformed_count, generated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		rep.AsOf.Format(model.DateLayout), ledgerFile, rep.TotalReceivable.StringFixed(2),
		rep.PendingCount, rep.PaidCount, rep.Malformed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadLoans reads the exported loans in ledger order.
func (e *Export) LoadLoans() ([]ExportedLoan, error) {
	rows, err := e.db.Query(`SELECT position, name, status, current_debt, malformed
		FROM loans ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var loans []ExportedLoan
	for rows.Next() {
		var l ExportedLoan
		var status, debtStr, malformed sql.NullString
		if err := rows.Scan(&l.Position, &l.Name, &status, &debtStr, &malformed); err != nil {
			return nil, err
		}
		l.Status = status.String
		l.CurrentDebt = debtStr.String
		l.Malformed = malformed.String
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// TotalReceivable returns the stored report's total, or "" if none.
func (e *Export) TotalReceivable() (string, error) {
	var total string
	err := e.db.QueryRow("SELECT total_receivable FROM report WHERE id = 1").Scan(&total)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return total, err
}
