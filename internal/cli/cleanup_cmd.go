package cli

import (
	"fmt"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCleanupCmd(a *App) *cobra.Command {
	var keepDays int
	var summaries bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete activity data older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewCleanupRequest()
			if a.Config != nil && a.Config.RetentionDays > 0 {
				req.KeepDays = a.Config.RetentionDays
			}
			if cmd.Flags().Changed("keep-days") {
				req.KeepDays = keepDays
			}
			req.IncludeSummaries = summaries
			now := a.now()
			req.Now = &now

			if !yes && a.IsInteractive {
				confirmed := false
				what := "raw activity and phone logs"
				if summaries {
					what += ", daily summaries and app usage"
				}
				form := confirmForm(
					fmt.Sprintf("Delete data older than %d days?", req.KeepDays),
					"This removes "+what+". It cannot be undone.",
					&confirmed,
				)
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cleanup cancelled."))
					return nil
				}
			}

			res, err := a.Retention.Cleanup(cmd.Context(), a.userID(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCleanup(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&keepDays, "keep-days", app.DefaultKeepDays, "Days of data to keep")
	cmd.Flags().BoolVar(&summaries, "summaries", false, "Also delete daily summaries and app usage")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
