package cli

import (
	"fmt"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// parseDay resolves a --date flag to a calendar day in now's location.
// Empty means today. YYYY-MM-DD is tried first, then natural language such
// as "yesterday" or "last monday".
func parseDay(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return midnight(now), nil
	}
	if d, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return d, nil
	}
	parsed, err := dateparser.Parse(&dateparser.Configuration{CurrentTime: now}, raw)
	if err != nil || parsed.Time.IsZero() {
		return time.Time{}, fmt.Errorf("unrecognized date %q: use YYYY-MM-DD or phrases like \"yesterday\"", raw)
	}
	t := parsed.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
