package source

import "log/slog"

// FetchEvent records metadata about a single fetch.
type FetchEvent struct {
	URL       string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about fetches for logging.
type Observer interface {
	OnFetchComplete(event FetchEvent)
}

// LogObserver writes fetch events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnFetchComplete(event FetchEvent) {
	if event.Success {
		o.logger.Debug("tracker_fetch", "url", event.URL, "latency_ms", event.LatencyMs, "attempts", event.Attempts)
		return
	}
	o.logger.Warn("tracker_fetch",
		"url", event.URL,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
		"error_code", event.ErrorCode,
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnFetchComplete(FetchEvent) {}
