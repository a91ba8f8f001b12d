package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/lendbook/internal/model"
)

// Fixed column order of the ledger file.
const (
	colName = iota
	colPrincipal
	colStartDate
	colMonthlyRate
	colPayments
	colStatus
	columnCount // sentinel
)

// Columns is the header row written to every ledger file.
var Columns = []string{"name", "principal", "start_date", "monthly_rate", "cumulative_payments", "status"}

// headerAliases maps lower-cased header text to a column. The Spanish names
// come from ledgers written by the earlier spreadsheet-era tool.
var headerAliases = map[string]int{
	"name":                colName,
	"nombre":              colName,
	"principal":           colPrincipal,
	"monto":               colPrincipal,
	"start_date":          colStartDate,
	"fecha":               colStartDate,
	"monthly_rate":        colMonthlyRate,
	"interes":             colMonthlyRate,
	"interés":             colMonthlyRate,
	"cumulative_payments": colPayments,
	"abonos":              colPayments,
	"status":              colStatus,
	"estado":              colStatus,
}

func isNumericColumn(col int) bool {
	return col == colPrincipal || col == colMonthlyRate || col == colPayments
}

// backfill returns the default for a column missing from the file.
func backfill(col int) string {
	if isNumericColumn(col) {
		return "0.0"
	}
	return ""
}

// entry is one ledger position. Rows that failed to parse keep their raw
// fields so they are written back unchanged.
type entry struct {
	loan model.Loan
	raw  []string
	err  error
}

// decoded is the result of reading a ledger table.
type decoded struct {
	entries []entry
	missing []string // columns absent from the header and backfilled
	odd     []oddStatus
}

// oddStatus records a status cell that is neither paid nor pending. The
// text is kept and written back unchanged.
type oddStatus struct {
	line  int
	value string
}

func decodeTable(r io.Reader) (decoded, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true // hand-edited names like Luis "el flaco"

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return decoded{}, nil
	}
	if err != nil {
		return decoded{}, fmt.Errorf("reading header: %w", err)
	}

	pos := make([]int, columnCount)
	for i := range pos {
		pos[i] = -1
	}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := headerAliases[h]; ok && pos[col] < 0 {
			pos[col] = i
		}
	}

	var out decoded
	for col, p := range pos {
		if p < 0 {
			out.missing = append(out.missing, Columns[col])
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			// One unreadable record does not stop the load.
			out.entries = append(out.entries, entry{
				raw: project(rec, pos),
				err: &MalformedValueError{Line: perr.StartLine, Column: "row", Err: perr.Err},
			})
			continue
		}
		if err != nil {
			return decoded{}, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		fields := project(rec, pos)
		loan, err := parseRow(line, fields)
		if err != nil {
			out.entries = append(out.entries, entry{raw: fields, err: err})
			continue
		}
		if _, ok := model.ParseStatus(strings.TrimSpace(fields[colStatus])); !ok {
			out.odd = append(out.odd, oddStatus{line: line, value: fields[colStatus]})
		}
		out.entries = append(out.entries, entry{loan: loan})
	}

	return out, nil
}

// project picks the known columns out of a record using the header
// positions, backfilling the ones the record lacks.
func project(rec []string, pos []int) []string {
	fields := make([]string, columnCount)
	for col, p := range pos {
		if p >= 0 && p < len(rec) {
			fields[col] = rec[p]
		} else {
			fields[col] = backfill(col)
		}
	}
	return fields
}

func parseRow(line int, fields []string) (model.Loan, error) {
	var l model.Loan
	var err error

	l.Name = fields[colName]
	if l.Principal, err = parseAmount(line, colPrincipal, fields[colPrincipal]); err != nil {
		return l, err
	}
	if l.StartDate, err = parseDate(line, fields[colStartDate]); err != nil {
		return l, err
	}
	if l.MonthlyRate, err = parseAmount(line, colMonthlyRate, fields[colMonthlyRate]); err != nil {
		return l, err
	}
	if l.Payments, err = parseAmount(line, colPayments, fields[colPayments]); err != nil {
		return l, err
	}
	l.Status, _ = model.ParseStatus(strings.TrimSpace(fields[colStatus]))
	return l, nil
}

// NormalizeAmount strips thousands separators and whitespace from a
// hand-edited number, e.g. " 1,250,000.50 " -> "1250000.50".
func NormalizeAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseAmount normalizes and parses a user or file supplied number.
// Empty input reads as zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	n := NormalizeAmount(s)
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n)
}

func parseAmount(line, col int, s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, &MalformedValueError{Line: line, Column: Columns[col], Value: s, Err: err}
	}
	return d, nil
}

func parseDate(line int, s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	// Spreadsheet exports sometimes append a midnight time of day.
	if len(v) > len(model.DateLayout) && (v[10] == ' ' || v[10] == 'T') {
		v = v[:len(model.DateLayout)]
	}
	d, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, &MalformedValueError{Line: line, Column: Columns[colStartDate], Value: s, Err: err}
	}
	return d, nil
}

func encodeTable(w io.Writer, entries []entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, e := range entries {
		if e.err != nil {
			if err := cw.Write(e.raw); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(formatRow(e.loan)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRow(l model.Loan) []string {
	status := l.Status
	if status == "" {
		status = model.StatusPending
	}
	return []string{
		l.Name,
		l.Principal.String(),
		l.StartDate.Format(model.DateLayout),
		l.MonthlyRate.String(),
		l.Payments.String(),
		string(status),
	}
}
