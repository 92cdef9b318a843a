package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/buildinfo"
	"github.com/cleared-dev/budget/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "budget",
		Short:   "Personal income and expense ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "config file")
	flags.StringVar(&opts.dataFile, "file", "", "ledger file (overrides data_file from config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(opts, "income", "Record income"),
		newAddCommand(opts, "expense", "Record an expense"),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
		newListCommand(opts),
		newImportCommand(opts),
		newExportCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
