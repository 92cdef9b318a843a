package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Sign returns +1 for income and -1 for expense.
func (k Kind) Sign() int64 {
	if k == KindExpense {
		return -1
	}
	return 1
}

// Label returns the capitalized name used in the ledger file ("Income", "Expense").
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return string(k)
	}
}

// Transaction is one recorded income or expense.
type Transaction struct {
	Kind        Kind
	Description string
	Amount      decimal.Decimal // always positive; the sign comes from Kind
}

// Signed returns the amount with the kind's sign applied.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}

// Transaction converts a bank row into a ledger transaction.
// ok is false for zero-amount rows, which have no ledger effect.
func (b BankTransaction) Transaction() (txn Transaction, ok bool) {
	switch {
	case b.Amount.IsPositive():
		return Transaction{Kind: KindIncome, Description: b.Description, Amount: b.Amount}, true
	case b.Amount.IsNegative():
		return Transaction{Kind: KindExpense, Description: b.Description, Amount: b.Amount.Abs()}, true
	default:
		return Transaction{}, false
	}
}
