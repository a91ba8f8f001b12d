package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

var today = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "loans.csv"), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loans.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func addLoan(t *testing.T, s *Store, name, principal, start, rate string) int {
	t.Helper()
	idx, err := s.Add(model.Loan{
		Name:        name,
		Principal:   dec(principal),
		StartDate:   mustDate(t, start),
		MonthlyRate: dec(rate),
	})
	if err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	return idx
}

func TestOpen_CreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "loans.csv")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join(Columns, ",") + "\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
}

func TestAdd_ForcesPendingAndZeroPayments(t *testing.T) {
	s := openTemp(t)
	idx, err := s.Add(model.Loan{
		Name:        "  Ana  ",
		Principal:   dec("1000"),
		StartDate:   today,
		MonthlyRate: dec("6"),
		Payments:    dec("999"),
		Status:      model.StatusPaid,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	l, err := s.Get(idx)
	if err != nil {
		t.Fatal(err)
	}
	if l.Status != model.StatusPending {
		t.Errorf("Status = %s, want Pending", l.Status)
	}
	if !l.Payments.IsZero() {
		t.Errorf("Payments = %s, want 0", l.Payments)
	}
	if l.Name != "Ana" {
		t.Errorf("Name = %q, want trimmed", l.Name)
	}
	if !l.StartDate.Equal(mustDate(t, "2026-10-17")) {
		t.Errorf("StartDate = %v, want date only", l.StartDate)
	}
}

func TestAdd_Validation(t *testing.T) {
	s := openTemp(t)
	tests := []model.Loan{
		{Name: "", Principal: dec("1"), MonthlyRate: dec("1")},
		{Name: "x", Principal: dec("-1"), MonthlyRate: dec("1")},
		{Name: "x", Principal: dec("1"), MonthlyRate: dec("100.01")},
		{Name: "x", Principal: dec("1"), MonthlyRate: dec("-0.5")},
	}
	for _, l := range tests {
		if _, err := s.Add(l); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Add(%+v) err = %v, want ErrInvalidInput", l, err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after rejected adds, want 0", s.Len())
	}
}

func TestFindLatestByName(t *testing.T) {
	s := openTemp(t)
	if _, err := s.FindLatestByName("Ana"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty store err = %v, want ErrEmpty", err)
	}

	addLoan(t, s, "Ana", "100", "2026-01-01", "5")
	addLoan(t, s, "Luis", "200", "2026-01-01", "5")
	last := addLoan(t, s, "Ana", "300", "2026-02-01", "5")

	idx, err := s.FindLatestByName("Ana")
	if err != nil {
		t.Fatal(err)
	}
	if idx != last {
		t.Fatalf("FindLatestByName = %d, want %d (last match wins)", idx, last)
	}

	_, err = s.FindLatestByName("Nadie")
	if !errors.Is(err, ErrNotFound) || !IsEmptyState(err) {
		t.Fatalf("missing name err = %v, want ErrNotFound", err)
	}
}

func TestApplyPayment_SettlesLoan(t *testing.T) {
	s := openTemp(t)
	idx := addLoan(t, s, "Carla", "10000", "2026-07-30", "5")

	owed, err := s.ApplyPayment(idx, dec("11000"))
	if err != nil {
		t.Fatal(err)
	}
	if !owed.Equal(dec("500")) {
		t.Fatalf("owed = %s, want 500", owed)
	}
	if l, _ := s.Get(idx); l.Status != model.StatusPending {
		t.Fatalf("Status = %s, want Pending", l.Status)
	}

	owed, err = s.ApplyPayment(idx, dec("500"))
	if err != nil {
		t.Fatal(err)
	}
	if !owed.IsZero() {
		t.Fatalf("owed = %s, want 0", owed)
	}
	l, _ := s.Get(idx)
	if l.Status != model.StatusPaid {
		t.Fatalf("Status = %s, want Paid", l.Status)
	}
	if !l.Payments.Equal(dec("11500")) {
		t.Fatalf("Payments = %s, want 11500", l.Payments)
	}

	// Persisted state survives a reload.
	reloaded, err := Open(s.Path(), WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if rl, _ := reloaded.Get(idx); rl.Status != model.StatusPaid || !rl.Payments.Equal(dec("11500")) {
		t.Fatalf("reloaded = %+v, want Paid with 11500 paid", rl)
	}
}

func TestApplyPayment_RejectsBadInput(t *testing.T) {
	s := openTemp(t)
	idx := addLoan(t, s, "Ana", "100", "2026-01-01", "5")
	if _, err := s.ApplyPayment(idx, dec("-1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative payment err = %v", err)
	}
	if _, err := s.ApplyPayment(5, dec("1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("out of range err = %v", err)
	}
}

func TestEdit(t *testing.T) {
	s := openTemp(t)
	idx := addLoan(t, s, "Ana", "1000", "2026-10-01", "5")
	if _, err := s.ApplyPayment(idx, dec("1000")); err != nil {
		t.Fatal(err)
	}
	if l, _ := s.Get(idx); l.Status != model.StatusPaid {
		t.Fatalf("precondition: Status = %s, want Paid", l.Status)
	}

	// Moving the start date back accrues interest and reopens the loan.
	owed, err := s.Edit(idx, EditRequest{
		Principal:   dec("1000"),
		StartDate:   mustDate(t, "2026-08-15"),
		MonthlyRate: dec("5"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !owed.Equal(dec("100")) {
		t.Fatalf("owed = %s, want 100", owed)
	}
	l, _ := s.Get(idx)
	if l.Status != model.StatusPending || !l.Payments.Equal(dec("1000")) {
		t.Fatalf("after edit = %+v, want Pending with payments kept", l)
	}

	owed, err = s.Edit(idx, EditRequest{
		Principal:     dec("2000"),
		StartDate:     mustDate(t, "2026-08-15"),
		MonthlyRate:   dec("0"),
		ResetPayments: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !owed.Equal(dec("2000")) {
		t.Fatalf("owed = %s, want 2000", owed)
	}
	if l, _ := s.Get(idx); !l.Payments.IsZero() {
		t.Fatalf("Payments = %s, want reset to 0", l.Payments)
	}

	if _, err := s.Edit(idx, EditRequest{Principal: dec("1"), MonthlyRate: dec("101")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid rate err = %v", err)
	}
}

func TestDelete_LeavesOthersUnchanged(t *testing.T) {
	s := openTemp(t)
	addLoan(t, s, "Ana", "100", "2026-01-01", "1")
	addLoan(t, s, "Luis", "200", "2026-02-01", "2")
	addLoan(t, s, "Eva", "300", "2026-03-01", "3")
	if _, err := s.ApplyPayment(2, dec("50")); err != nil {
		t.Fatal(err)
	}
	eva, _ := s.Get(2)
	ana, _ := s.Get(0)

	removed, err := s.Delete(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Name != "Luis" {
		t.Fatalf("removed %q, want Luis", removed.Name)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if got, _ := s.Get(0); !sameLoan(got, ana) {
		t.Errorf("index 0 = %+v, want %+v", got, ana)
	}
	if got, _ := s.Get(1); !sameLoan(got, eva) {
		t.Errorf("index 1 = %+v, want %+v (shifted)", got, eva)
	}
	if _, err := s.Delete(7); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("out of range delete err = %v", err)
	}
}

func TestListWithDebt(t *testing.T) {
	s := openTemp(t)
	addLoan(t, s, "Ana", "100000", "2026-04-17", "6")
	addLoan(t, s, "Luis", "50000", "2026-10-01", "10")
	paid := addLoan(t, s, "Carla", "10000", "2026-07-30", "5")
	if _, err := s.ApplyPayment(paid, dec("11500")); err != nil {
		t.Fatal(err)
	}

	rep := s.ListWithDebt(today)
	if len(rep.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rep.Rows))
	}
	wantDebt := []string{"136000", "50000", "0"}
	for i, w := range wantDebt {
		if !rep.Rows[i].CurrentDebt.Equal(dec(w)) {
			t.Errorf("row %d debt = %s, want %s", i, rep.Rows[i].CurrentDebt, w)
		}
	}
	if rep.Rows[0].Elapsed != 6 {
		t.Errorf("row 0 elapsed = %d, want 6", rep.Rows[0].Elapsed)
	}
	if !rep.TotalReceivable.Equal(dec("186000")) {
		t.Errorf("TotalReceivable = %s, want 186000", rep.TotalReceivable)
	}
	if rep.PendingCount != 2 || rep.PaidCount != 1 {
		t.Errorf("counts = %d pending / %d paid, want 2/1", rep.PendingCount, rep.PaidCount)
	}
}

func TestListWithDebt_StatusIsSnapshot(t *testing.T) {
	// A loan computed Pending stays Pending in storage no matter how its debt
	// evolves; only the listing's CurrentDebt is fresh.
	s := openTemp(t)
	idx := addLoan(t, s, "Ana", "1000", "2026-10-01", "10")

	later := today.AddDate(0, 3, 0)
	rep := s.ListWithDebt(later)
	if !rep.Rows[idx].CurrentDebt.Equal(dec("1300")) {
		t.Fatalf("debt = %s, want 1300", rep.Rows[idx].CurrentDebt)
	}
	if rep.Rows[idx].Loan.Status != model.StatusPending {
		t.Fatalf("status = %s, want stored Pending", rep.Rows[idx].Loan.Status)
	}
}

func TestNames(t *testing.T) {
	s := openTemp(t)
	addLoan(t, s, "Ana", "100", "2026-01-01", "0")
	addLoan(t, s, "Luis", "100", "2026-01-01", "0")
	addLoan(t, s, "Ana", "100", "2026-01-01", "0")
	if _, err := s.ApplyPayment(1, dec("100")); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(s.Names(false), ","); got != "Ana,Luis" {
		t.Errorf("Names(false) = %s", got)
	}
	if got := strings.Join(s.Names(true), ","); got != "Ana" {
		t.Errorf("Names(true) = %s", got)
	}
}

func TestSave_FailureKeepsMemoryConsistent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loans.csv")
	s, err := Open(path, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	addLoan(t, s, "Ana", "100", "2026-01-01", "1")

	// Replace the ledger's directory with a file so the next write fails.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(dir) })

	if _, err := s.ApplyPayment(0, dec("10")); err == nil {
		t.Fatal("ApplyPayment succeeded, want write error")
	}
	if l, _ := s.Get(0); !l.Payments.IsZero() {
		t.Fatalf("Payments = %s after failed write, want 0", l.Payments)
	}
}

func sameLoan(a, b model.Loan) bool {
	return a.Name == b.Name &&
		a.Principal.Equal(b.Principal) &&
		a.StartDate.Equal(b.StartDate) &&
		a.MonthlyRate.Equal(b.MonthlyRate) &&
		a.Payments.Equal(b.Payments) &&
		a.Status == b.Status
}
