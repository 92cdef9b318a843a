package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/config"
	"github.com/cleared-dev/budget/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var currency string
	var dataFile string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a budget.yaml and an empty ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, currency, dataFile)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "INR", "ISO 4217 currency code used for display")
	cmd.Flags().StringVar(&dataFile, "data-file", "budget_data.txt", "ledger file name, relative to the directory")

	return cmd
}

func runInit(cmd *cobra.Command, dir, currency, dataFile string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfg := config.Default()
	cfg.Currency = currency
	cfg.DataFile = dataFile
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	dataPath := cfg.ResolveDataFile(dir)
	if _, err := os.Stat(dataPath); errors.Is(err, fs.ErrNotExist) {
		if err := ledger.Save(dataPath, ledger.New()); err != nil {
			return describe(err)
		}
	} else if err != nil {
		return fmt.Errorf("checking ledger file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized budget at %s (ledger: %s)\n", dir, dataPath)
	return nil
}
