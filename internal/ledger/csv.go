package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/budget/internal/model"
)

// CSVHeader is the header row written by WriteCSV.
const CSVHeader = "kind,description,amount"

// WriteCSV exports entries as CSV (including header).
func WriteCSV(w io.Writer, entries []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range entries {
		row := []string{string(txn.Kind), txn.Description, FormatAmount(txn.Amount)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
