// Package ledger holds the in-memory income/expense ledger and its
// line-oriented text encoding.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budget/internal/model"
)

// Selection identifies the entry an update or delete applies to.
// The zero value selects nothing.
type Selection struct {
	index int
	ok    bool
}

// Select returns a Selection for the zero-based index i.
func Select(i int) Selection {
	return Selection{index: i, ok: true}
}

// NoSelection is the empty Selection.
var NoSelection = Selection{}

// Index returns the selected index and whether anything is selected.
func (s Selection) Index() (int, bool) {
	return s.index, s.ok
}

// Bounds on accepted amounts.
const (
	MaxIntegerDigits  = 15
	MaxFractionDigits = 8
	// maxExponent is checked before any arithmetic so exponent notation
	// such as "1e99999999" is rejected without being expanded.
	maxExponent = 32
)

var maxAmount = decimal.New(1, MaxIntegerDigits)

// Ledger is an ordered list of transactions plus the running balance.
// Balance always equals the signed sum of Entries.
type Ledger struct {
	balance decimal.Decimal
	entries []model.Transaction
	drift   decimal.Decimal // stored balance minus entries total, at load
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Clone returns an independent copy of l.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{balance: l.balance, entries: l.Entries(), drift: l.drift}
}

// Drift returns how far the balance line of the loaded file was from the
// total of its entries. It is zero for ledgers that were not loaded or
// whose file was consistent.
func (l *Ledger) Drift() decimal.Decimal {
	return l.drift
}

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in display order.
func (l *Ledger) Entries() []model.Transaction {
	out := make([]model.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns the entry at the selection.
func (l *Ledger) Entry(sel Selection) (model.Transaction, error) {
	i, err := l.resolve(sel)
	if err != nil {
		return model.Transaction{}, err
	}
	return l.entries[i], nil
}

// Totals returns the income and expense sums.
func (l *Ledger) Totals() (income, expense decimal.Decimal) {
	for _, t := range l.entries {
		if t.Kind == model.KindIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// Add validates and appends a transaction, adjusting the balance.
func (l *Ledger) Add(kind model.Kind, description string, amount decimal.Decimal) (model.Transaction, error) {
	if !kind.Valid() {
		return model.Transaction{}, &ValidationError{Field: "kind", Reason: "invalid kind " + string(kind)}
	}
	if err := validate(description, amount); err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{Kind: kind, Description: description, Amount: amount}
	l.entries = append(l.entries, txn)
	l.balance = l.balance.Add(txn.Signed())
	return txn, nil
}

// Update replaces the description and amount of the selected entry.
// The entry keeps its kind.
func (l *Ledger) Update(sel Selection, description string, amount decimal.Decimal) error {
	i, err := l.resolve(sel)
	if err != nil {
		return err
	}
	if err := validate(description, amount); err != nil {
		return err
	}

	old := l.entries[i]
	updated := model.Transaction{Kind: old.Kind, Description: description, Amount: amount}
	l.balance = l.balance.Sub(old.Signed()).Add(updated.Signed())
	l.entries[i] = updated
	return nil
}

// Delete removes the selected entry and reverses its effect on the balance.
func (l *Ledger) Delete(sel Selection) (model.Transaction, error) {
	i, err := l.resolve(sel)
	if err != nil {
		return model.Transaction{}, err
	}

	removed := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.balance = l.balance.Sub(removed.Signed())
	return removed, nil
}

// ParseAmount parses user input into a positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, invalidAmount()
	}
	if reason := checkMagnitude(d); reason != "" {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Reason: "invalid amount: " + reason}
	}
	return d, nil
}

// checkMagnitude returns a non-empty reason when d is outside the accepted
// range of amounts.
func checkMagnitude(d decimal.Decimal) string {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return "exponent out of range"
	}
	if d.Abs().Cmp(maxAmount) >= 0 {
		return fmt.Sprintf("must have at most %d integer digits", MaxIntegerDigits)
	}
	if !d.Equal(d.Truncate(MaxFractionDigits)) {
		return fmt.Sprintf("must have at most %d decimal places", MaxFractionDigits)
	}
	return ""
}

func (l *Ledger) resolve(sel Selection) (int, error) {
	i, ok := sel.Index()
	if !ok {
		return 0, &IndexError{Len: len(l.entries)}
	}
	if i < 0 || i >= len(l.entries) {
		return 0, &IndexError{Index: i, Len: len(l.entries), Selected: true}
	}
	return i, nil
}

func validate(description string, amount decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "description is required"}
	}
	if strings.ContainsAny(description, "\r\n") {
		return &ValidationError{Field: "description", Reason: "description must be a single line"}
	}
	if !amount.IsPositive() {
		return invalidAmount()
	}
	if reason := checkMagnitude(amount); reason != "" {
		return &ValidationError{Field: "amount", Reason: "invalid amount: " + reason}
	}
	return nil
}
