package activity

import (
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// WeeklyRollup sums seven daily summaries category by category. The most
// productive day is the one with the most study minutes; ties go to the
// earliest date.
func WeeklyRollup(days [7]domain.DailySummary) domain.WeeklySummary {
	bucket := domain.CategoryBucket{}
	var (
		bestDay   time.Time
		bestStudy = -1.0
		weekStart time.Time
		updated   time.Time
		userID    string
	)
	for _, d := range days {
		for c, m := range d.Categories {
			bucket[c] += m
		}
		study := d.StudyMinutes()
		if study > bestStudy || (study == bestStudy && d.Date.Before(bestDay)) {
			bestDay, bestStudy = d.Date, study
		}
		if weekStart.IsZero() || (!d.Date.IsZero() && d.Date.Before(weekStart)) {
			weekStart = d.Date
		}
		if d.UpdatedAt.After(updated) {
			updated = d.UpdatedAt
		}
		if userID == "" {
			userID = d.UserID
		}
	}

	w := domain.WeeklySummary{
		UserID:            userID,
		WeekStart:         weekStart,
		MostProductiveDay: bestDay,
		ActivitySummary:   domain.NewActivitySummary(bucket),
	}
	w.Year, w.Week = weekStart.ISOWeek()
	w.UpdatedAt = updated
	w.MostUsedApp = mostFrequentApp(days)
	return w
}

// mostFrequentApp picks the most used app across days, weighting each day's
// top app by that day's total minutes.
func mostFrequentApp(days [7]domain.DailySummary) string {
	weights := map[string]float64{}
	for _, d := range days {
		if d.MostUsedApp != "" {
			weights[d.MostUsedApp] += d.TotalMinutes()
		}
	}
	best := ""
	for app, w := range weights {
		if best == "" || w > weights[best] || (w == weights[best] && app < best) {
			best = app
		}
	}
	return best
}

// WeekDays returns the Monday..Sunday dates of the ISO week containing t,
// at midnight in t's location.
func WeekDays(t time.Time) [7]time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	var out [7]time.Time
	for i := range out {
		out[i] = monday.AddDate(0, 0, i)
	}
	return out
}
