package cli

import (
	"fmt"

	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/importer"
	"github.com/ashlinalex1/mindstride/internal/tracker"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var journalDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record foreground window usage until interrupted",
		Long: "Track samples the foreground window on a fixed interval, categorizes it and\n" +
			"stores the samples in batches. Stop it with Ctrl+C; pending samples are\n" +
			"flushed before exiting. Only Windows is supported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tracker.Config{UserID: app.userID()}
			if app.Config != nil {
				cfg.Interval = app.Config.TrackInterval
				cfg.BatchSize = app.Config.TrackBatchSize
			}
			if cmd.Flags().Changed("batch") {
				cfg.BatchSize, _ = cmd.Flags().GetInt("batch")
			}

			sampler := app.Sampler
			if sampler == nil {
				sampler = tracker.NewForegroundSampler()
			}

			out := cmd.OutOrStdout()
			opts := []tracker.Option{tracker.WithLogger(app.logger()), tracker.WithClock(app.now)}
			if journalDir != "" {
				opts = append(opts, tracker.WithJournal(importer.NewCSVJournal(journalDir)))
			}
			if verbose {
				opts = append(opts, tracker.WithOnRecord(func(r domain.UsageRecord) {
					fmt.Fprintf(out, "%s  %s  %s\n",
						formatter.Dim(r.Timestamp.Format("15:04:05")),
						formatter.CategoryLabel(domain.Category(r.Category)),
						formatter.Truncate(r.AppName+" · "+r.WindowTitle, 60))
				}))
			}

			interval := cfg.Interval
			if interval <= 0 {
				interval = tracker.DefaultInterval
			}
			t := tracker.New(cfg, sampler, app.Tracking, opts...)
			fmt.Fprintf(out, "%s Tracking every %s, press Ctrl+C to stop\n",
				formatter.StyleGreen.Render("●"), formatter.Bold(interval.String()))

			stats, err := t.Run(cmd.Context())
			fmt.Fprintf(out, "\n%d samples, %d skipped, %d stored, %d failed\n",
				stats.Samples, stats.Skipped, stats.Flushed, stats.Failed)
			return err
		},
	}

	cmd.Flags().StringVar(&journalDir, "journal", "", "Also append samples to daily CSV files in this directory")
	cmd.Flags().Int("batch", tracker.DefaultBatchSize, "Samples buffered before each store")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every sample")

	return cmd
}
