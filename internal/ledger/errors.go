package ledger

import (
	"errors"
	"fmt"
)

// Sentinels for matching error kinds with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrIndex      = errors.New("index error")
	ErrFormat     = errors.New("format error")
	ErrIO         = errors.New("io error")
)

// ValidationError reports a bad description or amount.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IndexError reports an absent or out-of-range selection.
type IndexError struct {
	Index    int
	Len      int
	Selected bool
}

func (e *IndexError) Error() string {
	if !e.Selected {
		return "no transaction selected"
	}
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndex) match.
func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// FormatError reports a corrupt persisted ledger. Line is 1-based; 0 means
// the error is not tied to a single line.
type FormatError struct {
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) match.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// IOError reports a ledger file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) match.
func (e *IOError) Is(target error) bool { return target == ErrIO }

func invalidAmount() error {
	return &ValidationError{Field: "amount", Reason: "invalid amount"}
}
