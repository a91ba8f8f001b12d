package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/model"

	"github.com/shopspring/decimal"
)

func testLedger(t *testing.T) *ledger.Store {
	t.Helper()
	today := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	s, err := ledger.Open(filepath.Join(t.TempDir(), "loans.csv"),
		ledger.WithClock(func() time.Time { return today }))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, l := range []model.Loan{
		{Name: "Ana", Principal: decimal.NewFromInt(100000), StartDate: today, MonthlyRate: decimal.NewFromInt(6)},
		{Name: "Luis", Principal: decimal.NewFromInt(50000), StartDate: today, MonthlyRate: decimal.NewFromInt(5)},
	} {
		if _, err := s.Add(l); err != nil {
			t.Fatalf("Add(%s): %v", l.Name, err)
		}
	}
	return s
}

func TestResolve_TrimsName(t *testing.T) {
	s := testLedger(t)

	for _, name := range []string{"Luis", " Luis", "Luis\t"} {
		idx, ok, err := resolve(s, name)
		if err != nil || !ok || idx != 1 {
			t.Errorf("resolve(%q) = %d, %v, %v; want 1, true, nil", name, idx, ok, err)
		}
	}

	if _, ok, err := resolve(s, "Eva"); ok || err != nil {
		t.Errorf("resolve(Eva) ok=%v err=%v, want not found without error", ok, err)
	}
}

func TestSetupLedgerFile_IgnoresOverrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(config.EnvLedgerFile, "/tmp/oneoff.csv")
	flagFile = "/tmp/flag.csv"
	t.Cleanup(func() { flagFile = "" })

	if got := setupLedgerFile(config.DefaultConfig()); got != config.DefaultLedgerPath() {
		t.Errorf("prefill = %q, want default %q", got, config.DefaultLedgerPath())
	}

	cfg := config.DefaultConfig()
	cfg.General.LedgerFile = "/home/me/loans.csv"
	if got := setupLedgerFile(cfg); got != "/home/me/loans.csv" {
		t.Errorf("prefill = %q, want configured path", got)
	}
}

func TestExportReport_ReadsBackRows(t *testing.T) {
	s := testLedger(t)
	out := filepath.Join(t.TempDir(), "report.db")

	rep, total, err := exportReport(s, out)
	if err != nil {
		t.Fatalf("exportReport: %v", err)
	}
	if len(rep.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rep.Rows))
	}
	if total != "150000.00" {
		t.Errorf("total = %q, want 150000.00", total)
	}
}
