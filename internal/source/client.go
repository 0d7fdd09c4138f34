package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Client fetches the current activity summary from a tracker backend.
type Client interface {
	// Fetch retrieves and decodes the backend's current summary.
	Fetch(ctx context.Context) (domain.ActivitySummary, error)

	// Available checks whether the backend answers at all.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client that polls cfg.URL with GET requests.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Fetch(ctx context.Context) (domain.ActivitySummary, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var lastErr error
	attempts := 1 + max(c.cfg.MaxRetries, 0)
	tried := 0
	for i := 0; i < attempts; i++ {
		tried++
		summary, err := c.doRequest(ctx)
		if err == nil {
			c.observer.OnFetchComplete(FetchEvent{
				URL:       c.cfg.URL,
				LatencyMs: time.Since(start).Milliseconds(),
				Attempts:  tried,
				Success:   true,
			})
			return summary, nil
		}
		lastErr = err

		// Malformed bodies are not retried.
		if ctx.Err() != nil || errors.Is(err, ErrBadPayload) {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnFetchComplete(FetchEvent{
		URL:       c.cfg.URL,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  tried,
		ErrorCode: errorCode(err),
	})
	return domain.ActivitySummary{}, err
}

func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(err, ErrBadPayload):
		return err
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func (c *httpClient) doRequest(ctx context.Context) (domain.ActivitySummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ActivitySummary{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.ActivitySummary{}, fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, string(body))
	}
	return Decode(body)
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadPayload):
		return "BAD_PAYLOAD"
	default:
		return "UNKNOWN"
	}
}
