package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cleared-dev/budget/internal/ledger"
)

// userError carries a message for the terminal while keeping the
// underlying error matchable with errors.Is / errors.As.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.err }

// describe translates ledger failures into messages for the user.
// Errors it does not recognize are returned unchanged.
func describe(err error) error {
	var (
		ve  *ledger.ValidationError
		ie  *ledger.IndexError
		fe  *ledger.FormatError
		ioe *ledger.IOError
	)
	switch {
	case errors.As(err, &ve):
		return &userError{msg: err.Error(), err: err}
	case errors.As(err, &ie):
		if !ie.Selected {
			return &userError{msg: "select a transaction first", err: err}
		}
		return &userError{msg: fmt.Sprintf("no transaction #%d (ledger has %d)", ie.Index+1, ie.Len), err: err}
	case errors.As(err, &fe):
		return &userError{msg: fmt.Sprintf("ledger file is corrupt: %v", fe), err: err}
	case errors.As(err, &ioe):
		return &userError{msg: fmt.Sprintf("cannot access ledger file %s: %v", ioe.Path, ioe.Err), err: err}
	default:
		return err
	}
}

// parseSelection converts a 1-based entry number from the command line.
func parseSelection(arg string) (ledger.Selection, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return ledger.NoSelection, fmt.Errorf("invalid entry number %q", arg)
	}
	return ledger.Select(n - 1), nil
}
