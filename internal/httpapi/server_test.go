package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/repository"
	"github.com/ashlinalex1/mindstride/internal/service"
	"github.com/ashlinalex1/mindstride/internal/source"
	"github.com/ashlinalex1/mindstride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

type fixture struct {
	srv      Server
	tracking service.TrackingService
	phone    service.PhoneService
	errs     []error
}

func setup(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{
		tracking: service.NewTrackingService(testutil.NewTestUoW(database), time.UTC),
		phone:    service.NewPhoneService(repository.NewSQLPhoneUsageRepo(database)),
	}
	summary := service.NewSummaryService(
		repository.NewSQLActivityLogRepo(database),
		repository.NewSQLDailySummaryRepo(database),
		repository.NewSQLWeeklySummaryRepo(database),
		repository.NewSQLAppUsageRepo(database),
	)
	f.srv = NewServer(Options{
		UserID:         testutil.TestUserID,
		DisableReqLogs: true,
		Tracking:       f.tracking,
		Summary:        summary,
		Phone:          f.phone,
		Now:            func() time.Time { return testNow },
		OnServerError:  func(err error, _ string) { f.errs = append(f.errs, err) },
	})
	return f
}

func (f *fixture) seed(t *testing.T, records ...domain.UsageRecord) {
	t.Helper()
	_, err := f.tracking.Ingest(context.Background(), testutil.TestUserID, records)
	require.NoError(t, err)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHome(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"mindstride","status":"ok"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","time":"2025-03-12T18:00:00Z"}`, rec.Body.String())
}

func TestActivityData(t *testing.T) {
	f := setup(t)
	f.seed(t,
		testutil.NewTestRecord(testNow.Add(-2*time.Hour), "Anki", "study", 30),
		testutil.NewTestRecord(testNow.Add(-time.Hour), "Slack", "work", 12.5),
	)

	rec := do(t, f.srv, http.MethodGet, "/api/activity-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Len(t, got, 8)
	assert.Equal(t, true, got["backend_connected"])
	assert.InDelta(t, 30.0, got["study"], 0.001)
	assert.InDelta(t, 12.5, got["work"], 0.001)
	assert.InDelta(t, 0.0, got["gaming"], 0.001)
}

func TestDailySummary(t *testing.T) {
	f := setup(t)
	f.seed(t,
		testutil.NewTestRecord(testNow.Add(-3*time.Hour), "Anki", "study", 45.5),
		testutil.NewTestRecord(testNow.Add(-2*time.Hour), "Netflix", "entertainment", 23.2),
		testutil.NewTestRecord(testNow.Add(-time.Hour), "Finder", "other", 15.8),
	)

	rec := do(t, f.srv, http.MethodGet, "/api/daily-summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, "2025-03-12", got["date"])
	assert.Equal(t, 84.5, got["total_minutes"])
	assert.Equal(t, 54.0, got["productivity_percentage"])
	assert.Equal(t, "1h 25m", got["total_formatted"])
	status := got["status"].(map[string]any)
	assert.Equal(t, "good", status["status"])
	assert.Equal(t, "blue", status["color"])
}

func TestDailySummary_BadDate(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/api/daily-summary?date=12-03-2025", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, string(app.ErrInvalidDate), got["code"])
}

func TestLastDays(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/api/last-7-days?days=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]map[string]any](t, rec)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-03-10", got[0]["date"])
	assert.Equal(t, false, got[0]["has_data"])

	rec = do(t, f.srv, http.MethodGet, "/api/last-7-days?days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeeklySummary_NotFoundWhenEmpty(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/api/weekly-summary", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No data available"}`, rec.Body.String())
}

func TestWeeklySummary(t *testing.T) {
	f := setup(t)
	f.seed(t, testutil.NewTestRecord(testNow.AddDate(0, 0, -1), "Anki", "study", 30))

	rec := do(t, f.srv, http.MethodGet, "/api/weekly-summary?date=2025-03-12", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[app.WeeklyView](t, rec)
	assert.Equal(t, "2025-03-10", got.WeekStart)
	assert.Equal(t, "2025-03-11", got.MostProductiveDay)
	assert.Len(t, got.Days, 7)
}

func TestIngest(t *testing.T) {
	f := setup(t)
	body := app.IngestRequest{Records: []app.RecordInput{
		{Timestamp: testNow.Add(-time.Hour), AppName: "Code", WindowTitle: "notes", Category: "study", DurationSeconds: 300},
	}}
	rec := do(t, f.srv, http.MethodPost, "/api/activity-logs", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[app.IngestResult](t, rec)
	assert.Equal(t, 1, res.Inserted)

	rec = do(t, f.srv, http.MethodGet, "/api/activity-logs?date=2025-03-12&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[[]domain.ActivityLog](t, rec)
	require.Len(t, logs, 1)
	assert.Equal(t, "Code", logs[0].AppName)
}

func TestIngest_BadRecordsDoNotRejectBatch(t *testing.T) {
	f := setup(t)
	body := app.IngestRequest{Records: []app.RecordInput{
		{Timestamp: testNow.Add(-time.Hour), AppName: "Anki", Category: "study", DurationSeconds: 600},
		{Timestamp: testNow.Add(-time.Hour), AppName: "", Category: "study", DurationSeconds: 60},
		{AppName: "Spotify", Category: "music", DurationSeconds: 60},
	}}
	rec := do(t, f.srv, http.MethodPost, "/api/activity-logs", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decode[app.IngestResult](t, rec)
	assert.Equal(t, 2, got.Inserted)
	assert.Equal(t, 1, got.Skipped)
	assert.Contains(t, got.Dates, "2025-03-12")
}

func TestIngest_EmptyBatchIsRejected(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodPost, "/api/activity-logs", app.IngestRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Contains(t, got["fields"], "records")
}

func TestActivityLogs_EmptyIsArray(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodGet, "/api/activity-logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, f.srv, http.MethodGet, "/api/activity-logs?limit=5000", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats_ConsumableBySourceClient(t *testing.T) {
	f := setup(t)
	f.seed(t,
		testutil.NewTestRecord(testNow.Add(-time.Hour), "Anki", "study", 30),
		testutil.NewTestRecord(testNow.Add(-2*time.Hour), "YouTube", "video", 10),
	)

	rec := do(t, f.srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summary, err := source.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.StudyMinutes())
	assert.Equal(t, 10.0, summary.EntertainmentMinutes())
	assert.Equal(t, "Anki", summary.MostUsedApp)
}

func TestTopApps(t *testing.T) {
	f := setup(t)
	f.seed(t,
		testutil.NewTestRecord(testNow.Add(-time.Hour), "Anki", "study", 30),
		testutil.NewTestRecord(testNow.AddDate(0, 0, -10), "Old", "study", 90),
	)

	rec := do(t, f.srv, http.MethodGet, "/api/top-apps?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[domain.Category][]domain.AppUsage](t, rec)
	require.Len(t, got[domain.CategoryStudy], 1)
	assert.Equal(t, "Anki", got[domain.CategoryStudy][0].AppName)

	rec = do(t, f.srv, http.MethodGet, "/api/top-apps?days=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodPost, "/predict", map[string]string{"text": "chrome Khan Academy - Learning"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"category":"study"}`, rec.Body.String())

	rec = do(t, f.srv, http.MethodPost, "/api/predict", map[string]string{"text": "VLC - music video"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"category":"entertainment"}`, rec.Body.String())

	rec = do(t, f.srv, http.MethodPost, "/predict", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPhoneUsage(t *testing.T) {
	f := setup(t)
	rec := do(t, f.srv, http.MethodPost, "/api/phone-usage", app.PhoneUsageInput{AppName: "Instagram", Duration: "00:12:30"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, f.srv, http.MethodPost, "/api/phone-usage", app.PhoneUsageInput{AppName: "Instagram", Duration: "12 minutes"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode[map[string]any](t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields["duration"], "HH:MM:SS")

	rec = do(t, f.srv, http.MethodGet, "/api/phone-usage-today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode[app.PhoneToday](t, rec)
	assert.Equal(t, 12.5, today.TotalMinutes)
	assert.Equal(t, 1, today.TotalApps)

	rec = do(t, f.srv, http.MethodGet, "/api/phone-usage-weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decode[app.PhoneWeekly](t, rec)
	require.Len(t, weekly.WeeklyData, 7)
	assert.Equal(t, "Instagram", weekly.WeeklyData[6].TopApp)
}

type failingSummary struct{ service.SummaryService }

func (failingSummary) Stats(context.Context, string, time.Time) (*app.StatsResponse, error) {
	return nil, errors.New("disk I/O error")
}

func TestServerError_ReportedAndHidden(t *testing.T) {
	var reported []error
	srv := NewServer(Options{
		UserID:         testutil.TestUserID,
		DisableReqLogs: true,
		Summary:        failingSummary{},
		OnServerError:  func(err error, _ string) { reported = append(reported, err) },
	})

	rec := do(t, srv, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	require.Len(t, reported, 1)
	assert.EqualError(t, reported[0], "disk I/O error")
}

func TestTrailingSlashAndUnknownRoute(t *testing.T) {
	f := setup(t)
	assert.Equal(t, http.StatusOK, do(t, f.srv, http.MethodGet, "/api/stats/", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, f.srv, http.MethodGet, "/api/nope", nil).Code)
}
