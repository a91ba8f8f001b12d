// Package ledger provides the CSV-backed loan record store.
//
// The whole table is loaded into memory and rewritten after every mutation.
// Loans are addressed by position; deleting a loan shifts later indices.
package ledger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/debt"
	"github.com/theirongolddev/lendbook/internal/model"
)

// Store is an ordered collection of loans persisted to a single CSV file.
// It is not safe for concurrent use.
type Store struct {
	path    string
	entries []entry
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the source of "today" used when recomputing status.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger attaches a logger for load/save diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// EditRequest carries the replacement values for Edit.
type EditRequest struct {
	Principal     decimal.Decimal
	StartDate     time.Time
	MonthlyRate   decimal.Decimal
	ResetPayments bool
}

// Open loads the ledger at path, creating an empty one if it does not exist.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the ledger file location.
func (s *Store) Path() string { return s.path }

// Len returns the number of ledger positions, malformed rows included.
func (s *Store) Len() int { return len(s.entries) }

// Today returns the store clock's current date.
func (s *Store) Today() time.Time { return model.Date(s.now()) }

// Load replaces the in-memory collection with the file's contents.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading ledger: %w", err)
		}
		s.entries = nil
		s.log.Info().Str("path", s.path).Msg("creating empty ledger")
		return s.save()
	}

	dec, err := decodeTable(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}
	if len(dec.missing) > 0 {
		s.log.Debug().Strs("columns", dec.missing).Msg("backfilled missing columns")
	}
	for _, o := range dec.odd {
		s.log.Warn().Int("line", o.line).Str("status", o.value).Msg("unrecognized status kept as written")
	}
	for _, e := range dec.entries {
		if e.err != nil {
			s.log.Warn().Err(e.err).Str("name", e.raw[colName]).Msg("flagged malformed row")
		}
	}

	s.entries = dec.entries
	s.log.Debug().Str("path", s.path).Int("rows", len(s.entries)).Msg("ledger loaded")
	return nil
}

// Get returns the loan at index.
func (s *Store) Get(index int) (model.Loan, error) {
	e, err := s.at(index)
	if err != nil {
		return model.Loan{}, err
	}
	return e.loan, nil
}

// Add appends a new loan. Status starts Pending and payments at zero
// whatever the caller supplied. It returns the new loan's index.
func (s *Store) Add(l model.Loan) (int, error) {
	l.Name = strings.TrimSpace(l.Name)
	if err := validate(l.Name, l.Principal, l.MonthlyRate); err != nil {
		return 0, err
	}
	l.StartDate = model.Date(l.StartDate)
	l.Payments = decimal.Zero
	l.Status = model.StatusPending

	prev := s.snapshot()
	s.entries = append(s.entries, entry{loan: l})
	if err := s.commit(prev); err != nil {
		return 0, err
	}
	s.log.Info().Str("name", l.Name).Str("principal", l.Principal.String()).Msg("loan added")
	return len(s.entries) - 1, nil
}

// FindLatestByName returns the highest index whose name matches exactly.
func (s *Store) FindLatestByName(name string) (int, error) {
	if len(s.entries) == 0 {
		return 0, ErrEmpty
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.err == nil && e.loan.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w for %q", ErrNotFound, name)
}

// ApplyPayment adds amount to the loan's cumulative payments and refreshes
// its status. It is not idempotent. It returns the debt after the payment.
func (s *Store) ApplyPayment(index int, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: payment %s is negative", ErrInvalidInput, amount)
	}
	e, err := s.at(index)
	if err != nil {
		return decimal.Zero, err
	}

	prev := s.snapshot()
	l := e.loan
	l.Payments = l.Payments.Add(amount)
	owed := debt.ForLoan(l, s.now())
	l.Status = debt.StatusFor(owed)
	s.entries[index] = entry{loan: l}

	if err := s.commit(prev); err != nil {
		return decimal.Zero, err
	}
	s.log.Info().Int("index", index).Str("name", l.Name).Str("amount", amount.String()).
		Str("owed", owed.String()).Msg("payment applied")
	return owed, nil
}

// Edit overwrites principal, start date and rate, optionally zeroing the
// payments, and refreshes status. It returns the recomputed debt.
func (s *Store) Edit(index int, req EditRequest) (decimal.Decimal, error) {
	e, err := s.at(index)
	if err != nil {
		return decimal.Zero, err
	}
	if err := validate(e.loan.Name, req.Principal, req.MonthlyRate); err != nil {
		return decimal.Zero, err
	}

	prev := s.snapshot()
	l := e.loan
	l.Principal = req.Principal
	l.StartDate = model.Date(req.StartDate)
	l.MonthlyRate = req.MonthlyRate
	if req.ResetPayments {
		l.Payments = decimal.Zero
	}
	owed := debt.ForLoan(l, s.now())
	l.Status = debt.StatusFor(owed)
	s.entries[index] = entry{loan: l}

	if err := s.commit(prev); err != nil {
		return decimal.Zero, err
	}
	s.log.Info().Int("index", index).Str("name", l.Name).Bool("reset_payments", req.ResetPayments).Msg("loan edited")
	return owed, nil
}

// Delete removes the position at index, malformed rows included, and returns
// the removed loan.
func (s *Store) Delete(index int) (model.Loan, error) {
	if index < 0 || index >= len(s.entries) {
		return model.Loan{}, fmt.Errorf("%w: index %d out of range", ErrInvalidInput, index)
	}

	prev := s.snapshot()
	removed := s.entries[index]
	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)

	if err := s.commit(prev); err != nil {
		return model.Loan{}, err
	}
	s.log.Info().Int("index", index).Str("name", removed.loan.Name).Msg("loan deleted")
	return removed.loan, nil
}

// ListWithDebt projects every position with its debt recomputed for asOf.
// The total counts only rows whose stored status is not Paid.
func (s *Store) ListWithDebt(asOf time.Time) model.Report {
	rep := model.Report{
		AsOf:            model.Date(asOf),
		Rows:            make([]model.Row, 0, len(s.entries)),
		TotalReceivable: decimal.Zero,
	}
	for i, e := range s.entries {
		if e.err != nil {
			rep.Rows = append(rep.Rows, model.Row{Index: i, Loan: model.Loan{Name: e.raw[colName]}, Err: e.err})
			rep.Malformed++
			continue
		}
		owed := debt.ForLoan(e.loan, asOf)
		rep.Rows = append(rep.Rows, model.Row{
			Index:       i,
			Loan:        e.loan,
			CurrentDebt: owed,
			Elapsed:     debt.ElapsedMonths(e.loan.StartDate, asOf),
		})
		if e.loan.IsPaid() {
			rep.PaidCount++
			continue
		}
		rep.PendingCount++
		rep.TotalReceivable = rep.TotalReceivable.Add(owed)
	}
	return rep
}

// Names returns distinct borrower names in first-seen order. With
// pendingOnly, loans marked Paid are skipped.
func (s *Store) Names(pendingOnly bool) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range s.entries {
		if e.err != nil || (pendingOnly && e.loan.IsPaid()) {
			continue
		}
		if _, ok := seen[e.loan.Name]; ok {
			continue
		}
		seen[e.loan.Name] = struct{}{}
		names = append(names, e.loan.Name)
	}
	return names
}

func (s *Store) at(index int) (entry, error) {
	if index < 0 || index >= len(s.entries) {
		return entry{}, fmt.Errorf("%w: index %d out of range", ErrInvalidInput, index)
	}
	e := s.entries[index]
	if e.err != nil {
		return entry{}, e.err
	}
	return e, nil
}

func (s *Store) snapshot() []entry {
	return append([]entry(nil), s.entries...)
}

// commit persists the collection, restoring prev if the write fails so
// memory never runs ahead of disk.
func (s *Store) commit(prev []entry) error {
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

// save rewrites the whole file via a temp file and rename.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := encodeTable(tmp, s.entries); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int("rows", len(s.entries)).Msg("ledger written")
	return nil
}

var hundred = decimal.NewFromInt(100)

func validate(name string, principal, rate decimal.Decimal) error {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is required")
	}
	if principal.IsNegative() {
		problems = append(problems, "principal must not be negative")
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		problems = append(problems, "monthly rate must be between 0 and 100")
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
}
