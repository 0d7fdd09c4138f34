package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/ashlinalex1/mindstride/internal/notify"
	"github.com/ashlinalex1/mindstride/internal/poller"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *App) *cobra.Command {
	var interval time.Duration
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow today's summary from the tracker backend",
		Long: "Watch polls the tracker backend's stats endpoint and shows today's summary\n" +
			"as it changes. A desktop notification is raised when the status tier changes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Source == nil {
				return errors.New("no tracker backend configured")
			}
			if !cmd.Flags().Changed("interval") && a.Config != nil && a.Config.PollInterval > 0 {
				interval = a.Config.PollInterval
			}
			sourceURL := ""
			if a.Config != nil {
				sourceURL = a.Config.SourceURL
			}

			if once {
				return watchOnce(cmd, a, sourceURL)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var tiers *notify.TierWatcher
			if a.Notifier != nil {
				tiers = notify.NewTierWatcher(a.Notifier)
			}
			onSnapshot := func(s poller.Snapshot) {
				if tiers == nil || !s.Connected {
					return
				}
				if _, err := tiers.Observe(s.Summary); err != nil {
					a.logger().Warn("tier_notification_failed", "error", err)
				}
			}

			if !a.IsInteractive {
				out := cmd.OutOrStdout()
				p := poller.New(a.Source,
					poller.WithInterval(interval),
					poller.WithLogger(a.logger()),
					poller.WithClock(a.now),
					poller.WithOnUpdate(func(s poller.Snapshot) {
						fmt.Fprintln(out, watchLine(s))
						onSnapshot(s)
					}),
				)
				if err := p.Run(ctx); err != nil && ctx.Err() == nil {
					return err
				}
				return nil
			}

			var prog *tea.Program
			p := poller.New(a.Source,
				poller.WithInterval(interval),
				poller.WithLogger(a.logger()),
				poller.WithClock(a.now),
				poller.WithOnUpdate(func(s poller.Snapshot) {
					onSnapshot(s)
					prog.Send(snapshotMsg(s))
				}),
			)

			var wg sync.WaitGroup
			refresh := func() {
				wg.Add(1)
				go func() {
					defer wg.Done()
					p.Poll(ctx)
				}()
			}
			prog = tea.NewProgram(
				newWatchModel(sourceURL, a.now, refresh),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)

			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Run(ctx)
			}()

			_, err := prog.Run()
			cancel()
			wg.Wait()
			if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", poller.DefaultInterval, "Time between polls")
	cmd.Flags().BoolVar(&once, "once", false, "Poll once, print the summary and exit")

	return cmd
}

func watchOnce(cmd *cobra.Command, a *App, sourceURL string) error {
	p := poller.New(a.Source, poller.WithLogger(a.logger()), poller.WithClock(a.now))
	p.Poll(cmd.Context())
	snap := p.Latest()

	out := cmd.OutOrStdout()
	if !snap.Connected {
		fmt.Fprintln(out, formatter.ConnectionIndicator(false))
		fmt.Fprint(out, disconnectedHint(sourceURL, snap.Err))
		if snap.Err == nil {
			return errors.New("tracker backend unreachable")
		}
		return fmt.Errorf("tracker backend unreachable: %w", snap.Err)
	}

	now := a.now()
	v := app.NewDailyView(midnight(now), snap.Summary)
	fmt.Fprintln(out, formatter.ConnectionIndicator(true))
	fmt.Fprintln(out, formatter.FormatDaily(&v, now))
	return nil
}
