package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rollbar/rollbar-go"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// NewSlogUseCaseObserver logs use-case events through logger.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "service_use_case", attrs...)
}

// RollbarConfig identifies this process to Rollbar.
type RollbarConfig struct {
	Token       string
	Environment string
	CodeVersion string
	ServerHost  string
}

// reportError is swapped in tests.
var reportError = func(args ...interface{}) { rollbar.Error(args...) }

type rollbarUseCaseObserver struct{}

// NewRollbarUseCaseObserver reports failed use cases to Rollbar. An empty
// token disables reporting.
func NewRollbarUseCaseObserver(cfg RollbarConfig) UseCaseObserver {
	if cfg.Token == "" {
		return NoopUseCaseObserver{}
	}
	rollbar.SetToken(cfg.Token)
	rollbar.SetEnvironment(cfg.Environment)
	rollbar.SetCodeVersion(cfg.CodeVersion)
	rollbar.SetServerHost(cfg.ServerHost)
	return rollbarUseCaseObserver{}
}

func (rollbarUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	if event.Err == nil {
		return
	}
	extras := map[string]interface{}{
		"use_case":    event.Name,
		"duration_ms": event.Duration.Milliseconds(),
	}
	for k, v := range event.Fields {
		extras[k] = v
	}
	reportError(event.Err, extras)
}

// ReportError sends an error raised outside a use case, such as a failed
// HTTP request, to Rollbar.
func ReportError(err error, path string) {
	reportError(err, map[string]interface{}{"path": path})
}

// FlushRollbar blocks until queued Rollbar items are sent.
func FlushRollbar() {
	rollbar.Wait()
}

type multiUseCaseObserver []UseCaseObserver

// NewMultiUseCaseObserver fans each event out to every non-nil observer.
func NewMultiUseCaseObserver(observers ...UseCaseObserver) UseCaseObserver {
	var out multiUseCaseObserver
	for _, o := range observers {
		if o == nil {
			continue
		}
		if _, noop := o.(NoopUseCaseObserver); noop {
			continue
		}
		out = append(out, o)
	}
	if len(out) == 0 {
		return NoopUseCaseObserver{}
	}
	return out
}

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
