package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned by name lookups when the ledger holds no loans.
	ErrEmpty = errors.New("no loans recorded")
	// ErrNotFound is returned when no loan matches a borrower name.
	ErrNotFound = errors.New("no loan found")
	// ErrInvalidInput wraps validation failures on operation arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedValue matches any MalformedValueError via errors.Is.
	ErrMalformedValue = errors.New("malformed persisted value")
)

// MalformedValueError describes a stored field that could not be parsed.
// Line is the 1-based line in the ledger file, header included.
type MalformedValueError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("line %d: column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedValueError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedValue) match.
func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}

// IsEmptyState reports whether err is an informational "nothing to act on"
// condition rather than a failure.
func IsEmptyState(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrNotFound)
}
