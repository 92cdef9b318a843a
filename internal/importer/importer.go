// Package importer turns bank CSV exports into ledger transactions.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&BudgetParser{})
	return r
}

// Apply adds every non-zero row to l and returns how many were added.
// Either all rows are added or l is unchanged.
func Apply(l *ledger.Ledger, txns []model.BankTransaction) (int, error) {
	work := l.Clone()
	added := 0
	for i, bt := range txns {
		txn, ok := bt.Transaction()
		if !ok {
			continue
		}
		if _, err := work.Add(txn.Kind, txn.Description, txn.Amount); err != nil {
			return 0, fmt.Errorf("row %d (%q): %w", i+1, bt.Description, err)
		}
		added++
	}
	*l = *work
	return added, nil
}
