package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashlinalex1/mindstride/internal/cli"
	"github.com/ashlinalex1/mindstride/internal/config"
	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/logging"
	"github.com/ashlinalex1/mindstride/internal/notify"
	"github.com/ashlinalex1/mindstride/internal/repository"
	"github.com/ashlinalex1/mindstride/internal/service"
	"github.com/ashlinalex1/mindstride/internal/source"
	"github.com/ashlinalex1/mindstride/internal/tracker"
	"github.com/charmbracelet/fang"
	"github.com/mattn/go-isatty"
)

// errCommandFailed marks errors fang has already printed.
var errCommandFailed = errors.New("command failed")

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Debug output also goes to the terminal.
	var console io.Writer
	if cfg.LogLevel == "debug" {
		console = os.Stderr
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: console,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCloser.Close()

	database, err := db.OpenDB(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	host, _ := os.Hostname()
	observer := service.NewMultiUseCaseObserver(
		service.NewSlogUseCaseObserver(logger),
		service.NewRollbarUseCaseObserver(service.RollbarConfig{
			Token:       cfg.RollbarToken,
			Environment: cfg.Environment,
			CodeVersion: version,
			ServerHost:  host,
		}),
	)
	defer service.FlushRollbar()

	// Wire repositories
	logRepo := repository.NewSQLActivityLogRepo(database)
	dailyRepo := repository.NewSQLDailySummaryRepo(database)
	weeklyRepo := repository.NewSQLWeeklySummaryRepo(database)
	appRepo := repository.NewSQLAppUsageRepo(database)
	phoneRepo := repository.NewSQLPhoneUsageRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewUnitOfWork(database)

	app := &cli.App{
		Tracking:  service.NewTrackingService(uow, time.Local, observer),
		Summary:   service.NewSummaryService(logRepo, dailyRepo, weeklyRepo, appRepo, observer),
		Phone:     service.NewPhoneService(phoneRepo, observer),
		Retention: service.NewRetentionService(uow, observer),
		Config:    cfg,
		Logger:    logger,
		Source: source.NewHTTPClient(source.Config{
			URL:        cfg.SourceURL,
			Timeout:    cfg.SourceTimeout,
			MaxRetries: cfg.SourceRetries,
		}, source.NewLogObserver(logger)),
		Sampler: tracker.NewForegroundSampler(),
		OnServerError: func(err error, path string) {
			logger.Error("http_server_error", "path", path, "error", err)
			if cfg.RollbarToken != "" {
				service.ReportError(err, path)
			}
		},
		IsInteractive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		Now:           time.Now,
	}
	if cfg.Notify {
		app.Notifier = notify.NewDesktopNotifier()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, cli.NewRootCmd(app),
		fang.WithVersion(version),
		fang.WithColorSchemeFunc(fang.DefaultColorScheme),
	); err != nil {
		return fmt.Errorf("%w: %w", errCommandFailed, err)
	}
	return nil
}
