package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/activity"
	"github.com/cleared-dev/budget/internal/ledger"
	"github.com/cleared-dev/budget/internal/model"
)

// newAddCommand builds the income and expense commands; name is the kind.
func newAddCommand(opts *options, name, short string) *cobra.Command {
	kind := model.Kind(name)

	return &cobra.Command{
		Use:   name + " <description> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.mutate(func(l *ledger.Ledger) (activity.Entry, error) {
				amount, err := ledger.ParseAmount(args[1])
				if err != nil {
					return activity.Entry{}, err
				}
				txn, err := l.Add(kind, args[0], amount)
				if err != nil {
					return activity.Entry{}, err
				}
				return activity.Entry{
					Action:      activity.ActionAdd,
					Index:       l.Len() - 1,
					Description: txn.Description,
					Amount:      txn.Signed(),
				}, nil
			})
		},
	}
}
