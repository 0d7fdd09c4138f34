package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesFailures(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "ingest",
		Duration: 15 * time.Millisecond,
		Err:      errors.New("boom"),
		Fields:   map[string]any{"records": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=ingest")
	assert.Contains(t, out, "records=3")
	assert.Contains(t, out, "error=boom")
}

func TestLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestRollbarUseCaseObserver_ReportsOnlyFailures(t *testing.T) {
	var reported [][]interface{}
	orig := reportError
	reportError = func(args ...interface{}) { reported = append(reported, args) }
	t.Cleanup(func() { reportError = orig })

	obs := rollbarUseCaseObserver{}
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "stats", Success: true})
	assert.Empty(t, reported)

	failure := errors.New("db locked")
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "cleanup",
		Err:    failure,
		Fields: map[string]any{"keep_days": 30},
	})
	require.Len(t, reported, 1)
	assert.Equal(t, failure, reported[0][0])
	extras := reported[0][1].(map[string]interface{})
	assert.Equal(t, "cleanup", extras["use_case"])
	assert.Equal(t, 30, extras["keep_days"])
}

func TestReportError_AttachesPath(t *testing.T) {
	var reported [][]interface{}
	orig := reportError
	reportError = func(args ...interface{}) { reported = append(reported, args) }
	t.Cleanup(func() { reportError = orig })

	ReportError(errors.New("write failed"), "/api/activity-logs")
	require.Len(t, reported, 1)
	extras := reported[0][1].(map[string]interface{})
	assert.Equal(t, "/api/activity-logs", extras["path"])
}

func TestRollbarUseCaseObserver_NoTokenIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewRollbarUseCaseObserver(RollbarConfig{}))
}

func TestMultiUseCaseObserver_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := NewMultiUseCaseObserver(a, nil, NoopUseCaseObserver{}, b)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "ingest"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)

	assert.IsType(t, NoopUseCaseObserver{}, NewMultiUseCaseObserver(nil))
}
