package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

func TestWriteReport_ReplacesContents(t *testing.T) {
	ex, err := Open(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer ex.Close()

	asOf := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	rep := model.Report{
		AsOf: asOf,
		Rows: []model.Row{
			{
				Index: 0,
				Loan: model.Loan{
					Name: "Ana", Principal: decimal.NewFromInt(100000), StartDate: asOf.AddDate(0, -6, 0),
					MonthlyRate: decimal.NewFromInt(6), Payments: decimal.Zero, Status: model.StatusPending,
				},
				CurrentDebt: decimal.NewFromInt(136000),
				Elapsed:     6,
			},
			{Index: 1, Loan: model.Loan{Name: "Luis"}, Err: errors.New("line 3: bad principal")},
		},
		TotalReceivable: decimal.NewFromInt(136000),
		PendingCount:    1,
		Malformed:       1,
	}

	if err := ex.WriteReport("loans.csv", rep); err != nil {
		t.Fatal(err)
	}
	// A second export must not duplicate rows.
	if err := ex.WriteReport("loans.csv", rep); err != nil {
		t.Fatal(err)
	}

	loans, err := ex.LoadLoans()
	if err != nil {
		t.Fatal(err)
	}
	if len(loans) != 2 {
		t.Fatalf("loans = %d, want 2", len(loans))
	}
	if loans[0].Name != "Ana" || loans[0].CurrentDebt != "136000.00" || loans[0].Status != "Pending" {
		t.Errorf("loan 0 = %+v", loans[0])
	}
	if loans[1].Malformed == "" || loans[1].Status != "" {
		t.Errorf("loan 1 = %+v, want malformed marker", loans[1])
	}

	total, err := ex.TotalReceivable()
	if err != nil {
		t.Fatal(err)
	}
	if total != "136000.00" {
		t.Errorf("total = %q", total)
	}
}

func TestTotalReceivable_NoReport(t *testing.T) {
	ex, err := Open(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer ex.Close()

	total, err := ex.TotalReceivable()
	if err != nil || total != "" {
		t.Fatalf("TotalReceivable = %q, %v", total, err)
	}
}
