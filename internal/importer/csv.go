package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

const (
	// TimestampLayout is the local wall-clock format of the Timestamp column.
	TimestampLayout = "2006-01-02 15:04:05"

	// DefaultRowSeconds is the duration of one row when the file carries no
	// duration column: one row per sampling interval.
	DefaultRowSeconds = 5.0
)

const (
	colTimestamp = "Timestamp"
	colApp       = "App Name"
	colTitle     = "Window Title"
	colCategory  = "Category"
	colDuration  = "Duration Seconds"
)

// Header is the column order written by the CSV journal.
var Header = []string{colTimestamp, colApp, colTitle, colCategory}

// Row is one raw CSV line.
type Row struct {
	Line        int
	Timestamp   string
	AppName     string
	WindowTitle string
	Category    string
	Duration    string
}

// ReadRows parses a daily activity CSV. Columns are matched by header name,
// so column order does not matter.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{colTimestamp, colApp, colCategory} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		rows = append(rows, Row{
			Line:        line,
			Timestamp:   field(rec, colTimestamp),
			AppName:     field(rec, colApp),
			WindowTitle: field(rec, colTitle),
			Category:    field(rec, colCategory),
			Duration:    field(rec, colDuration),
		})
	}
	return rows, nil
}

// ValidateRows checks every row and returns all problems found.
func ValidateRows(rows []Row) []error {
	var errs []error
	for _, r := range rows {
		if r.Timestamp == "" {
			errs = append(errs, fmt.Errorf("line %d: timestamp is required", r.Line))
		} else if _, err := time.Parse(TimestampLayout, r.Timestamp); err != nil {
			errs = append(errs, fmt.Errorf("line %d: invalid timestamp %q (expected %s)", r.Line, r.Timestamp, TimestampLayout))
		}
		if r.AppName == "" {
			errs = append(errs, fmt.Errorf("line %d: app name is required", r.Line))
		}
		// Negative durations are left to the aggregation clamp.
		if r.Duration != "" {
			if _, err := strconv.ParseFloat(r.Duration, 64); err != nil {
				errs = append(errs, fmt.Errorf("line %d: invalid duration %q", r.Line, r.Duration))
			}
		}
	}
	return errs
}

// Convert turns validated rows into usage records. Timestamps are read in
// loc and categories are lowercased. Call ValidateRows first.
func Convert(rows []Row, loc *time.Location, rowSeconds float64) ([]domain.UsageRecord, error) {
	if loc == nil {
		loc = time.Local
	}
	if rowSeconds <= 0 {
		rowSeconds = DefaultRowSeconds
	}
	out := make([]domain.UsageRecord, 0, len(rows))
	for _, r := range rows {
		ts, err := time.ParseInLocation(TimestampLayout, r.Timestamp, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing timestamp: %w", r.Line, err)
		}
		secs := rowSeconds
		if r.Duration != "" {
			if secs, err = strconv.ParseFloat(r.Duration, 64); err != nil {
				return nil, fmt.Errorf("line %d: parsing duration: %w", r.Line, err)
			}
		}
		out = append(out, domain.UsageRecord{
			Timestamp:       ts,
			AppName:         r.AppName,
			WindowTitle:     r.WindowTitle,
			Category:        strings.ToLower(r.Category),
			DurationSeconds: secs,
		})
	}
	return out, nil
}

// DailyFileName is the journal file of day.
func DailyFileName(day time.Time) string {
	return "desktop_activity_" + day.Format("2006-01-02") + ".csv"
}
