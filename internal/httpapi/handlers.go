package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// dateParam reads an optional YYYY-MM-DD query parameter in the server's
// local time. Missing means today.
func (s *server) dateParam(ctx echo.Context, name string) (time.Time, error) {
	now := s.opts.Now()
	raw := ctx.QueryParam(name)
	if raw == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, now.Location())
	if err != nil {
		return time.Time{}, &app.RequestError{Code: app.ErrInvalidDate, Message: "date must be YYYY-MM-DD, got " + strconv.Quote(raw)}
	}
	return d, nil
}

// intParam reads an optional integer query parameter.
func intParam(ctx echo.Context, name string, def int, code app.RequestErrorCode) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &app.RequestError{Code: code, Message: name + " must be an integer, got " + strconv.Quote(raw)}
	}
	return n, nil
}

func (s *server) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "healthy", "time": s.opts.Now().Format(time.RFC3339)})
}

// activityData serves today's minutes under the seven canonical keys, the
// shape desktop widgets poll for.
func (s *server) activityData(ctx echo.Context) error {
	v, err := s.opts.Summary.Daily(ctx.Request().Context(), s.opts.UserID, s.opts.Now())
	if err != nil {
		return err
	}
	out := echo.Map{"backend_connected": true}
	for _, c := range domain.CanonicalOrder {
		out[string(c)] = app.Round2(v.Summary.Categories.Minutes(c))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) dailySummary(ctx echo.Context) error {
	date, err := s.dateParam(ctx, "date")
	if err != nil {
		return err
	}
	v, err := s.opts.Summary.Daily(ctx.Request().Context(), s.opts.UserID, date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v)
}

func (s *server) lastDays(ctx echo.Context) error {
	n, err := intParam(ctx, "days", app.DefaultRangeDays, app.ErrInvalidRange)
	if err != nil {
		return err
	}
	days, err := s.opts.Summary.LastDays(ctx.Request().Context(), s.opts.UserID, s.opts.Now(), n)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, days)
}

func (s *server) weeklySummary(ctx echo.Context) error {
	date, err := s.dateParam(ctx, "date")
	if err != nil {
		return err
	}
	v, err := s.opts.Summary.Weekly(ctx.Request().Context(), s.opts.UserID, date)
	if err != nil {
		return err
	}
	if !v.HasData {
		return echo.NewHTTPError(http.StatusNotFound, "No data available")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (s *server) topApps(ctx echo.Context) error {
	n, err := intParam(ctx, "days", app.DefaultRangeDays, app.ErrInvalidRange)
	if err != nil {
		return err
	}
	if n < 1 || n > app.MaxRangeDays {
		return &app.RequestError{Code: app.ErrInvalidRange, Message: "days must be between 1 and " + strconv.Itoa(app.MaxRangeDays)}
	}
	now := s.opts.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(n - 1))
	top, err := s.opts.Summary.TopApps(ctx.Request().Context(), s.opts.UserID, since)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, top)
}

func (s *server) activityLogs(ctx echo.Context) error {
	date, err := s.dateParam(ctx, "date")
	if err != nil {
		return err
	}
	req := app.NewLogsRequest(date)
	if req.Limit, err = intParam(ctx, "limit", app.DefaultLogLimit, app.ErrInvalidLimit); err != nil {
		return err
	}
	logs, err := s.opts.Summary.Logs(ctx.Request().Context(), s.opts.UserID, req)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.ActivityLog{}
	}
	return ctx.JSON(http.StatusOK, logs)
}

func (s *server) stats(ctx echo.Context) error {
	resp, err := s.opts.Summary.Stats(ctx.Request().Context(), s.opts.UserID, s.opts.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *server) ingest(ctx echo.Context) error {
	var req app.IngestRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}
	records := make([]domain.UsageRecord, len(req.Records))
	for i, in := range req.Records {
		records[i] = in.Record()
	}
	res, err := s.opts.Tracking.Ingest(ctx.Request().Context(), s.opts.UserID, records)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (s *server) predict(ctx echo.Context) error {
	var req app.PredictRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"category": activity.Categorize(req.Text)})
}

func (s *server) recordPhoneUsage(ctx echo.Context) error {
	var in app.PhoneUsageInput
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	if err := ctx.Validate(&in); err != nil {
		return err
	}
	l, err := s.opts.Phone.Record(ctx.Request().Context(), s.opts.UserID, in, s.opts.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"id": l.ID, "app_name": l.AppName, "duration": l.Duration})
}

func (s *server) phoneUsageToday(ctx echo.Context) error {
	resp, err := s.opts.Phone.Today(ctx.Request().Context(), s.opts.UserID, s.opts.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *server) phoneUsageWeekly(ctx echo.Context) error {
	resp, err := s.opts.Phone.Weekly(ctx.Request().Context(), s.opts.UserID, s.opts.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}
