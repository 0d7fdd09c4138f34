package cli

import (
	"log/slog"
	"time"

	"github.com/ashlinalex1/mindstride/internal/config"
	"github.com/ashlinalex1/mindstride/internal/notify"
	"github.com/ashlinalex1/mindstride/internal/service"
	"github.com/ashlinalex1/mindstride/internal/source"
	"github.com/ashlinalex1/mindstride/internal/tracker"
	"github.com/spf13/cobra"
)

// App holds the services and collaborators used by CLI commands.
type App struct {
	Tracking  service.TrackingService
	Summary   service.SummaryService
	Phone     service.PhoneService
	Retention service.RetentionService

	Config *config.Config
	Logger *slog.Logger

	// Source is the remote tracker backend read by watch.
	Source source.Client
	// Sampler reads the foreground window for track. Nil selects the
	// platform sampler.
	Sampler tracker.Sampler
	// Notifier receives status tier changes during watch. Nil disables them.
	Notifier notify.Notifier
	// OnServerError is forwarded to the HTTP server started by serve.
	OnServerError func(err error, path string)

	IsInteractive bool
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) userID() string {
	if a.Config != nil && a.Config.UserID != "" {
		return a.Config.UserID
	}
	return config.DemoUserID
}

// NewRootCmd creates the top-level "mindstride" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mindstride",
		Short: "Screen-time tracking with study-focused summaries",
		Long: "MindStride records which applications you use, sorts them into study,\n" +
			"entertainment and other categories, and reports how your time was spent.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newTodayCmd(app),
		newDaysCmd(app),
		newWeekCmd(app),
		newLogsCmd(app),
		newAppsCmd(app),
		newPhoneCmd(app),
		newImportCmd(app),
		newTrackCmd(app),
		newServeCmd(app),
		newWatchCmd(app),
		newCleanupCmd(app),
		newClassifyCmd(app),
	)

	return root
}
