package domain

import (
	"encoding/json"
	"time"
)

// ActivitySummary is an immutable per-period snapshot of minutes per
// category. The total is always derived from Categories.
type ActivitySummary struct {
	Categories  CategoryBucket
	MostUsedApp string
	UpdatedAt   time.Time
}

// NewActivitySummary copies bucket so later changes to it cannot leak in.
func NewActivitySummary(bucket CategoryBucket) ActivitySummary {
	if bucket == nil {
		return ActivitySummary{Categories: CategoryBucket{}}
	}
	return ActivitySummary{Categories: bucket.Clone()}
}

func (s ActivitySummary) TotalMinutes() float64         { return s.Categories.Total() }
func (s ActivitySummary) StudyMinutes() float64         { return s.Categories.Minutes(CategoryStudy) }
func (s ActivitySummary) EntertainmentMinutes() float64 { return s.Categories.Minutes(CategoryEntertainment) }
func (s ActivitySummary) OtherMinutes() float64         { return s.Categories.Minutes(CategoryOther) }
func (s ActivitySummary) WorkMinutes() float64          { return s.Categories.Minutes(CategoryWork) }
func (s ActivitySummary) SocialMinutes() float64        { return s.Categories.Minutes(CategorySocial) }
func (s ActivitySummary) ProductivityMinutes() float64  { return s.Categories.Minutes(CategoryProductivity) }
func (s ActivitySummary) GamingMinutes() float64        { return s.Categories.Minutes(CategoryGaming) }

// IsEmpty reports whether no time was tracked.
func (s ActivitySummary) IsEmpty() bool {
	return s.TotalMinutes() == 0
}

// summaryWire is the JSON shape shared with tracker backends.
type summaryWire struct {
	StudyMinutes         float64    `json:"study_minutes"`
	EntertainmentMinutes float64    `json:"entertainment_minutes"`
	OthersMinutes        float64    `json:"others_minutes"`
	WorkMinutes          float64    `json:"work_minutes"`
	SocialMinutes        float64    `json:"social_minutes"`
	ProductivityMinutes  float64    `json:"productivity_minutes"`
	GamingMinutes        float64    `json:"gaming_minutes"`
	TotalMinutes         float64    `json:"total_minutes"`
	MostUsedApp          string     `json:"most_used_app,omitempty"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

func (s ActivitySummary) MarshalJSON() ([]byte, error) {
	w := summaryWire{
		StudyMinutes:         s.StudyMinutes(),
		EntertainmentMinutes: s.EntertainmentMinutes(),
		OthersMinutes:        s.OtherMinutes(),
		WorkMinutes:          s.WorkMinutes(),
		SocialMinutes:        s.SocialMinutes(),
		ProductivityMinutes:  s.ProductivityMinutes(),
		GamingMinutes:        s.GamingMinutes(),
		TotalMinutes:         s.TotalMinutes(),
		MostUsedApp:          s.MostUsedApp,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		w.UpdatedAt = &t
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the pre-aggregated summary object. The incoming
// total_minutes is ignored; the total is re-derived from the buckets.
// Negative bucket values are clamped to zero.
func (s *ActivitySummary) UnmarshalJSON(data []byte) error {
	var w summaryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b := CategoryBucket{}
	set := func(c Category, v float64) {
		if v > 0 {
			b[c] = v
		}
	}
	set(CategoryStudy, w.StudyMinutes)
	set(CategoryEntertainment, w.EntertainmentMinutes)
	set(CategoryOther, w.OthersMinutes)
	set(CategoryWork, w.WorkMinutes)
	set(CategorySocial, w.SocialMinutes)
	set(CategoryProductivity, w.ProductivityMinutes)
	set(CategoryGaming, w.GamingMinutes)

	*s = ActivitySummary{Categories: b, MostUsedApp: w.MostUsedApp}
	if w.UpdatedAt != nil {
		s.UpdatedAt = *w.UpdatedAt
	}
	return nil
}

// NormalizedSummary is the three-bucket display view of a summary.
type NormalizedSummary struct {
	Study         float64 `json:"study"`
	Entertainment float64 `json:"entertainment"`
	Others        float64 `json:"others"`
}

// Total returns study + entertainment + others.
func (n NormalizedSummary) Total() float64 {
	return n.Study + n.Entertainment + n.Others
}

// DailySummary is the stored summary for one calendar day.
type DailySummary struct {
	UserID string
	Date   time.Time
	ActivitySummary
}

// WeeklySummary is the rollup of seven daily summaries of one ISO week.
type WeeklySummary struct {
	UserID            string
	Year              int
	Week              int
	WeekStart         time.Time
	MostProductiveDay time.Time
	ActivitySummary
}

// AppUsage is the minutes spent in one application under one category.
type AppUsage struct {
	UserID       string   `json:"-"`
	Date         string   `json:"date"`
	AppName      string   `json:"app_name"`
	Category     Category `json:"category"`
	TotalMinutes float64  `json:"total_minutes"`
}
