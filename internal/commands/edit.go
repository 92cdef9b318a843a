package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/activity"
	"github.com/cleared-dev/budget/internal/ledger"
)

func newUpdateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "update <n> <description> <amount>",
		Short: "Change the description and amount of entry n (kind is kept)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelection(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.mutate(func(l *ledger.Ledger) (activity.Entry, error) {
				amount, err := ledger.ParseAmount(args[2])
				if err != nil {
					return activity.Entry{}, err
				}
				if err := l.Update(sel, args[1], amount); err != nil {
					return activity.Entry{}, err
				}
				txn, err := l.Entry(sel)
				if err != nil {
					return activity.Entry{}, err
				}
				i, _ := sel.Index()
				return activity.Entry{
					Action:      activity.ActionUpdate,
					Index:       i,
					Description: txn.Description,
					Amount:      txn.Signed(),
				}, nil
			})
		},
	}
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <n>",
		Short: "Remove entry n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelection(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.mutate(func(l *ledger.Ledger) (activity.Entry, error) {
				removed, err := l.Delete(sel)
				if err != nil {
					return activity.Entry{}, err
				}
				i, _ := sel.Index()
				return activity.Entry{
					Action:      activity.ActionDelete,
					Index:       i,
					Description: removed.Description,
					Amount:      removed.Signed().Neg(),
				}, nil
			})
		},
	}
}
