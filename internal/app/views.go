package app

import (
	"math"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Round2 rounds to two decimals for display payloads.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SummaryView is the presentation shape of an ActivitySummary: the flat
// minute fields shared with tracker backends plus every derived metric.
type SummaryView struct {
	StudyMinutes            float64                  `json:"study_minutes"`
	EntertainmentMinutes    float64                  `json:"entertainment_minutes"`
	OthersMinutes           float64                  `json:"others_minutes"`
	WorkMinutes             float64                  `json:"work_minutes"`
	SocialMinutes           float64                  `json:"social_minutes"`
	ProductivityMinutes     float64                  `json:"productivity_minutes"`
	GamingMinutes           float64                  `json:"gaming_minutes"`
	TotalMinutes            float64                  `json:"total_minutes"`
	MostUsedApp             string                   `json:"most_used_app,omitempty"`
	MostUsedCategory        domain.Category          `json:"most_used_category,omitempty"`
	UpdatedAt               *time.Time               `json:"updated_at,omitempty"`
	Normalized              domain.NormalizedSummary `json:"normalized"`
	ProductivityPercentage  int                      `json:"productivity_percentage"`
	EntertainmentPercentage int                      `json:"entertainment_percentage"`
	Status                  domain.DerivedStatus     `json:"status"`
	TotalFormatted          string                   `json:"total_formatted"`
	HasData                 bool                     `json:"has_data"`

	Summary domain.ActivitySummary `json:"-"`
}

// NewSummaryView derives all display metrics from s.
func NewSummaryView(s domain.ActivitySummary) SummaryView {
	v := SummaryView{
		StudyMinutes:            Round2(s.StudyMinutes()),
		EntertainmentMinutes:    Round2(s.EntertainmentMinutes()),
		OthersMinutes:           Round2(s.OtherMinutes()),
		WorkMinutes:             Round2(s.WorkMinutes()),
		SocialMinutes:           Round2(s.SocialMinutes()),
		ProductivityMinutes:     Round2(s.ProductivityMinutes()),
		GamingMinutes:           Round2(s.GamingMinutes()),
		TotalMinutes:            Round2(s.TotalMinutes()),
		MostUsedApp:             s.MostUsedApp,
		Normalized:              activity.Normalize(s.Categories),
		ProductivityPercentage:  activity.ProductivityPercentage(s),
		EntertainmentPercentage: activity.EntertainmentPercentage(s),
		Status:                  activity.Status(s),
		TotalFormatted:          activity.FormatDuration(s.TotalMinutes()),
		HasData:                 !s.IsEmpty(),
		Summary:                 s,
	}
	if c, ok := activity.MostUsedCategory(s); ok {
		v.MostUsedCategory = c
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

// DailyView is one day's summary.
type DailyView struct {
	Date string `json:"date"`
	Day  string `json:"day"`
	SummaryView
}

func NewDailyView(date time.Time, s domain.ActivitySummary) DailyView {
	return DailyView{
		Date:        date.Format("2006-01-02"),
		Day:         date.Format("Mon"),
		SummaryView: NewSummaryView(s),
	}
}

// WeeklyView is one ISO week's rollup with its days.
type WeeklyView struct {
	Year              int         `json:"year"`
	WeekNumber        int         `json:"week_number"`
	WeekStart         string      `json:"week_start"`
	MostProductiveDay string      `json:"most_productive_day,omitempty"`
	Days              []DailyView `json:"days"`
	SummaryView
}

func NewWeeklyView(w domain.WeeklySummary, days []DailyView) WeeklyView {
	v := WeeklyView{
		Year:        w.Year,
		WeekNumber:  w.Week,
		WeekStart:   w.WeekStart.Format("2006-01-02"),
		Days:        days,
		SummaryView: NewSummaryView(w.ActivitySummary),
	}
	if !w.MostProductiveDay.IsZero() {
		v.MostProductiveDay = w.MostProductiveDay.Format("2006-01-02")
	}
	return v
}

// StatsResponse bundles everything a dashboard renders.
type StatsResponse struct {
	Today       DailyView                             `json:"today"`
	Last7Days   []DailyView                           `json:"last_7_days"`
	CurrentWeek WeeklyView                            `json:"current_week"`
	TopApps     map[domain.Category][]domain.AppUsage `json:"top_apps"`
}

// AppMinutes is one entry of a top-apps list.
type AppMinutes struct {
	App     string  `json:"app"`
	Minutes float64 `json:"minutes"`
}

// PhoneToday summarizes the last 24 hours of phone usage.
type PhoneToday struct {
	TotalMinutes float64      `json:"total_minutes"`
	TotalApps    int          `json:"total_apps"`
	TopApps      []AppMinutes `json:"top_apps"`
	Message      string       `json:"message"`
}

// PhoneDay is one bar of the weekly phone chart.
type PhoneDay struct {
	Day     string  `json:"day"`
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
	TopApp  string  `json:"top_app"`
}

type PhoneWeekly struct {
	WeeklyData []PhoneDay `json:"weekly_data"`
	Message    string     `json:"message"`
}

// IngestResult reports what a batch ingest stored.
type IngestResult struct {
	BatchID  string   `json:"batch_id"`
	Inserted int      `json:"inserted"`
	Clamped  int      `json:"clamped"`
	Skipped  int      `json:"skipped"`
	Dates    []string `json:"dates"`
}

// CleanupResult reports rows removed by retention cleanup.
type CleanupResult struct {
	Cutoff         string `json:"cutoff"`
	ActivityLogs   int64  `json:"activity_logs"`
	PhoneLogs      int64  `json:"phone_logs"`
	DailySummaries int64  `json:"daily_summaries"`
	AppUsageRows   int64  `json:"app_usage_rows"`
}
