// Package render formats a ledger for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/model"
)

const rule = "-------------------------------------------------"

// Renderer writes ledger views in a fixed currency.
type Renderer struct {
	code     string
	currency *money.Currency // nil for codes go-money does not know
}

// New returns a Renderer for an ISO 4217 currency code.
func New(currencyCode string) *Renderer {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	return &Renderer{code: code, currency: money.GetCurrency(code)}
}

// Money formats d in the renderer's currency, e.g. "₹1,200.50".
// Unknown currencies, and amounts too large for go-money's int64 minor
// units, render as "1200.50 XYZ".
func (r *Renderer) Money(d decimal.Decimal) string {
	if r.currency == nil {
		return r.plain(d)
	}
	minor := d.Shift(int32(r.currency.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return r.plain(d)
	}
	return r.currency.Formatter().Format(minor.IntPart())
}

func (r *Renderer) plain(d decimal.Decimal) string {
	return strings.TrimSpace(d.StringFixed(2) + " " + r.code)
}

// Signed formats the transaction amount with its sign, e.g. "+₹100.00".
func (r *Renderer) Signed(txn model.Transaction) string {
	if txn.Kind == model.KindExpense {
		return "-" + r.Money(txn.Amount)
	}
	return "+" + r.Money(txn.Amount)
}

// Line returns the display form of one entry, numbered from 1.
func (r *Renderer) Line(n int, txn model.Transaction) string {
	return fmt.Sprintf("%3d. %s: %s | %s", n, txn.Kind.Label(), txn.Description, r.Signed(txn))
}

// Ledger writes the balance header followed by every entry.
func (r *Renderer) Ledger(w io.Writer, l *ledger.Ledger) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current Balance: %s\n", r.Money(l.Balance()))
	income, expense := l.Totals()
	fmt.Fprintf(&sb, "Income: %s  Expenses: %s\n", r.Money(income), r.Money(expense))
	sb.WriteString(rule + "\n")
	entries := l.Entries()
	if len(entries) == 0 {
		sb.WriteString("(no transactions)\n")
	}
	for i, txn := range entries {
		sb.WriteString(r.Line(i+1, txn))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
