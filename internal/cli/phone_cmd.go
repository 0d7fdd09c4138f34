package cli

import (
	"fmt"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPhoneCmd(a *App) *cobra.Command {
	var week bool

	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Show phone screen time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if week {
				v, err := a.Phone.Weekly(cmd.Context(), a.userID(), a.now())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhoneWeekly(v))
				return nil
			}

			v, err := a.Phone.Today(cmd.Context(), a.userID(), a.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPhoneToday(v))
			return nil
		},
	}

	cmd.Flags().BoolVar(&week, "week", false, "Show the last 7 days instead of today")
	cmd.AddCommand(newPhoneAddCmd(a))

	return cmd
}

func newPhoneAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add APP DURATION",
		Short:   "Record a phone app session",
		Example: "  mindstride phone add Instagram 00:25:30\n  mindstride phone add Maps 12:05",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := app.PhoneUsageInput{AppName: args[0], Duration: args[1]}
			l, err := a.Phone.Record(cmd.Context(), a.userID(), in, a.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Recorded %s for %s\n",
				formatter.StyleGreen.Render("✔"), l.Duration, formatter.Bold(l.AppName))
			return nil
		},
	}
}
