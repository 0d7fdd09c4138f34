// Package httpapi serves summaries, logs and phone usage over HTTP and
// accepts record batches from remote trackers.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashlinalex1/mindstride/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type (
	Options struct {
		Address        string
		UserID         string
		Debug          bool
		DisableReqLogs bool

		Tracking service.TrackingService
		Summary  service.SummaryService
		Phone    service.PhoneService

		Logger *slog.Logger
		// OnServerError receives every error that became a 500.
		OnServerError func(err error, path string)
		Now           func() time.Time
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts      Options
		app       *echo.Echo
		validator *requestValidator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts Options) Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &server{
		opts:      opts,
		app:       echo.New(),
		validator: newRequestValidator(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug
	s.app.Validator = s.validator

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(s.requestLogger)
	}
	if !s.opts.Debug {
		s.app.Use(middleware.Recover())
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.validator, func(err error, ctx echo.Context) {
		s.opts.Logger.Error("http_server_error", "path", ctx.Path(), "error", err)
		if s.opts.OnServerError != nil {
			s.opts.OnServerError(err, ctx.Path())
		}
	})

	s.app.GET("/", s.home)
	s.app.POST("/predict", s.predict)

	api := s.app.Group("/api")
	api.GET("/health", s.health)
	api.GET("/activity-data", s.activityData)
	api.POST("/predict", s.predict)
	api.GET("/daily-summary", s.dailySummary)
	api.GET("/last-7-days", s.lastDays)
	api.GET("/weekly-summary", s.weeklySummary)
	api.GET("/top-apps", s.topApps)
	api.GET("/activity-logs", s.activityLogs)
	api.GET("/stats", s.stats)
	api.POST("/activity-logs", s.ingest)

	api.POST("/phone-usage", s.recordPhoneUsage)
	api.GET("/phone-usage-today", s.phoneUsageToday)
	api.GET("/phone-usage-weekly", s.phoneUsageWeekly)
}

// requestLogger logs one line per request through slog.
func (s *server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)
		if err != nil {
			ctx.Error(err)
		}
		s.opts.Logger.Info("http_request",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"status", ctx.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

// Start blocks serving on Address until Stop is called.
func (s *server) Start() error {
	s.opts.Logger.Info("http_server_started", "address", s.opts.Address)
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"name": "mindstride", "status": "ok"})
}
