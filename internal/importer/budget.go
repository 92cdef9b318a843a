package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/model"
)

// BudgetParser reads the CSV written by ledger.WriteCSV.
type BudgetParser struct{}

const (
	budgetNumFields = 3
	budgetColKind   = 0
	budgetColDesc   = 1
	budgetColAmount = 2
)

// Format returns the parser name.
func (p *BudgetParser) Format() string { return "budget" }

// Parse reads kind,description,amount rows. Amounts are magnitudes; the
// returned BankTransactions carry the kind as the sign.
func (p *BudgetParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = budgetNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading budget CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		kind := model.Kind(rec[budgetColKind])
		if !kind.Valid() {
			return nil, fmt.Errorf("row %d: unknown kind %q", i+2, rec[budgetColKind])
		}
		amount, err := ledger.ParseAmount(rec[budgetColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[budgetColAmount], err)
		}
		txns = append(txns, model.BankTransaction{
			Description: rec[budgetColDesc],
			Amount:      amount.Mul(decimal.NewFromInt(kind.Sign())),
		})
	}
	return txns, nil
}
