package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budget/internal/activity"
)

func newLogCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := activity.Read(s.cfg.ActivityDir(s.baseDir))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(s.out, "(no activity)")
				return nil
			}

			tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tACTION\t#\tDESCRIPTION\tAMOUNT\tBALANCE")
			for _, e := range entries {
				n := "-"
				if e.Index >= 0 {
					n = strconv.Itoa(e.Index + 1)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Action, n, e.Description,
					e.Amount.StringFixed(2), s.renderer.Money(e.Balance))
			}
			return tw.Flush()
		},
	}
}
