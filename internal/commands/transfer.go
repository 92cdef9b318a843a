package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/activity"
	"github.com/cleared-dev/budget/internal/importer"
	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/model"
)

func newImportCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add every row of a bank CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				formats := registry.Formats()
				sort.Strings(formats)
				return fmt.Errorf("unknown format %q (known: %s)", format, strings.Join(formats, ", "))
			}

			txns, err := parseFile(parser, args[0])
			if err != nil {
				return err
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.mutate(func(l *ledger.Ledger) (activity.Entry, error) {
				before := l.Balance()
				n, err := importer.Apply(l, txns)
				if err != nil {
					return activity.Entry{}, err
				}
				s.logger.Debug("imported rows", "file", args[0], "format", parser.Format(), "rows", len(txns), "added", n)
				return activity.Entry{
					Action:      activity.ActionImport,
					Index:       -1,
					Description: fmt.Sprintf("%d rows from %s", n, args[0]),
					Amount:      l.Balance().Sub(before),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "CSV layout (chase, budget)")

	return cmd
}

func parseFile(p importer.Parser, path string) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return txns, nil
}

func newExportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.csv>",
		Short: "Write all entries as CSV (\"-\" for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			l, err := s.load()
			if err != nil {
				return err
			}

			if args[0] == "-" {
				return ledger.WriteCSV(s.out, l.Entries())
			}
			return exportFile(args[0], l, s.out)
		},
	}
}

func exportFile(path string, l *ledger.Ledger, out io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := ledger.WriteCSV(f, l.Entries()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d entries to %s\n", l.Len(), path)
	return nil
}
