package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTodayCmd(app *App) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the activity summary of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := parseDay(date, now)
			if err != nil {
				return err
			}

			v, err := app.Summary.Daily(cmd.Context(), app.userID(), day)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDaily(v, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD or e.g. \"yesterday\")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

func newDaysCmd(a *App) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show a per-day breakdown of recent days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := a.Summary.LastDays(cmd.Context(), a.userID(), a.now(), n)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDays(days))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "days", "n", app.DefaultRangeDays, "Number of days ending today")

	return cmd
}

func newWeekCmd(app *App) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the ISO week rollup with a daily chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, app.now())
			if err != nil {
				return err
			}

			v, err := app.Summary.Weekly(cmd.Context(), app.userID(), day)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), v)
			}
			out, err := formatter.FormatWeek(v)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day within the week to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the rollup as JSON")

	return cmd
}

func newLogsCmd(a *App) *cobra.Command {
	var date string
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List raw activity logs of a day, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, a.now())
			if err != nil {
				return err
			}

			req := app.NewLogsRequest(day)
			if cmd.Flags().Changed("limit") {
				req.Limit = limit
			}

			logs, err := a.Summary.Logs(cmd.Context(), a.userID(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogs(logs))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list")
	cmd.Flags().IntVar(&limit, "limit", app.DefaultLogLimit, "Maximum number of logs")

	return cmd
}

func newAppsCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Show the most used apps of each category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || days > app.MaxRangeDays {
				return fmt.Errorf("--days must be between 1 and %d", app.MaxRangeDays)
			}
			since := midnight(a.now()).AddDate(0, 0, -(days - 1))

			top, err := a.Summary.TopApps(cmd.Context(), a.userID(), since)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTopApps(top))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", app.DefaultRangeDays, "Number of days ending today")

	return cmd
}
