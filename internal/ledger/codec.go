package ledger

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budget/internal/model"
)

const (
	incomePrefix  = "Income: "
	expensePrefix = "Expense: "
	delimiter     = " | "
	// legacyGlyph is written after the sign by older budget files.
	legacyGlyph   = "₹"
)

// FormatAmount renders d with at least two fraction digits, keeping any
// extra precision so decoding is lossless.
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// EncodeTransaction returns the single-line form of txn,
// e.g. "Expense: rent | -500.00".
func EncodeTransaction(txn model.Transaction) string {
	prefix, sign := incomePrefix, "+"
	if txn.Kind == model.KindExpense {
		prefix, sign = expensePrefix, "-"
	}
	return prefix + txn.Description + delimiter + sign + FormatAmount(txn.Amount)
}

// DecodeTransaction parses a line produced by EncodeTransaction.
func DecodeTransaction(line string) (model.Transaction, error) {
	var kind model.Kind
	var rest string
	switch {
	case strings.HasPrefix(line, incomePrefix):
		kind, rest = model.KindIncome, line[len(incomePrefix):]
	case strings.HasPrefix(line, expensePrefix):
		kind, rest = model.KindExpense, line[len(expensePrefix):]
	default:
		return model.Transaction{}, fmt.Errorf("missing Income/Expense prefix")
	}

	i := strings.LastIndex(rest, delimiter)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("missing %q delimiter", strings.TrimSpace(delimiter))
	}
	desc, signed := rest[:i], rest[i+len(delimiter):]
	if strings.TrimSpace(desc) == "" {
		return model.Transaction{}, fmt.Errorf("empty description")
	}

	want := "+"
	if kind == model.KindExpense {
		want = "-"
	}
	if !strings.HasPrefix(signed, want) {
		return model.Transaction{}, fmt.Errorf("%s amount must start with %q", kind, want)
	}
	num := strings.TrimPrefix(signed[len(want):], legacyGlyph)

	amount, err := decimal.NewFromString(num)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", num, err)
	}
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("amount %s is not positive", num)
	}
	if reason := checkMagnitude(amount); reason != "" {
		return model.Transaction{}, fmt.Errorf("amount %q: %s", num, reason)
	}

	return model.Transaction{Kind: kind, Description: desc, Amount: amount}, nil
}

// Serialize returns the ledger file contents: the balance line followed by
// one line per entry.
func (l *Ledger) Serialize() string {
	var sb strings.Builder
	sb.WriteString(FormatAmount(l.balance))
	sb.WriteByte('\n')
	for _, txn := range l.entries {
		sb.WriteString(EncodeTransaction(txn))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Deserialize parses ledger file contents into a new Ledger. The balance is
// recomputed from the entries; see Drift.
func Deserialize(text string) (*Ledger, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	var (
		lineNo     int
		haveHeader bool
		stored     decimal.Decimal
		l          = New()
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !haveHeader {
			b, err := decimal.NewFromString(strings.TrimSpace(line))
			if err != nil {
				return nil, &FormatError{Line: lineNo, Reason: "invalid balance", Err: err}
			}
			if exp := b.Exponent(); exp > maxExponent || exp < -maxExponent {
				return nil, &FormatError{Line: lineNo, Reason: "invalid balance: exponent out of range"}
			}
			stored, haveHeader = b, true
			continue
		}

		txn, err := DecodeTransaction(line)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Reason: "invalid transaction", Err: err}
		}
		l.entries = append(l.entries, txn)
		l.balance = l.balance.Add(txn.Signed())
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Line: lineNo, Reason: "reading ledger", Err: err}
	}

	if !haveHeader {
		return nil, &FormatError{Reason: "missing balance line"}
	}
	// The balance is always the entries total; a differing balance line
	// (e.g. float noise from older files) is kept only as Drift.
	l.drift = stored.Sub(l.balance)
	return l, nil
}

// MarshalText implements encoding.TextMarshaler.
func (l *Ledger) MarshalText() ([]byte, error) {
	return []byte(l.Serialize()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On error l is unchanged.
func (l *Ledger) UnmarshalText(text []byte) error {
	parsed, err := Deserialize(string(text))
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}
