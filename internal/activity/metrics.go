package activity

import (
	"fmt"
	"math"
	"sort"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// Status thresholds on the productivity percentage, lower bound inclusive.
const (
	ExcellentThreshold = 70
	GoodThreshold      = 50
	AverageThreshold   = 30
)

// maxWhole bounds float to int conversions so they stay defined.
const maxWhole = math.MaxInt32

// roundHalfUp rounds x to a whole number within ±maxWhole. NaN yields 0.
func roundHalfUp(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Floor(x + 0.5)
	switch {
	case r > maxWhole:
		return maxWhole
	case r < -maxWhole:
		return -maxWhole
	}
	return int(r)
}

// Percentage returns part as a whole-number percentage of total, rounded
// half-up. A zero total yields 0, as does a ratio that is not a number.
func Percentage(part, total float64) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(100 * part / total)
}

// ProductivityPercentage is study minutes as a percentage of all minutes.
func ProductivityPercentage(s domain.ActivitySummary) int {
	return Percentage(s.StudyMinutes(), s.TotalMinutes())
}

// EntertainmentPercentage is entertainment minutes as a percentage of all minutes.
func EntertainmentPercentage(s domain.ActivitySummary) int {
	return Percentage(s.EntertainmentMinutes(), s.TotalMinutes())
}

var statuses = map[domain.StatusTier]domain.DerivedStatus{
	domain.TierExcellent:        {Tier: domain.TierExcellent, Message: "Excellent focus on studies!", Color: "green"},
	domain.TierGood:             {Tier: domain.TierGood, Message: "Good balance of study time", Color: "blue"},
	domain.TierAverage:          {Tier: domain.TierAverage, Message: "Room for improvement", Color: "yellow"},
	domain.TierNeedsImprovement: {Tier: domain.TierNeedsImprovement, Message: "Focus more on studies", Color: "red"},
}

// TierFor classifies a productivity percentage.
func TierFor(pct int) domain.StatusTier {
	switch {
	case pct >= ExcellentThreshold:
		return domain.TierExcellent
	case pct >= GoodThreshold:
		return domain.TierGood
	case pct >= AverageThreshold:
		return domain.TierAverage
	default:
		return domain.TierNeedsImprovement
	}
}

// Status derives the status tier of a summary. An empty summary is 0% and
// therefore needs-improvement.
func Status(s domain.ActivitySummary) domain.DerivedStatus {
	return statuses[TierFor(ProductivityPercentage(s))]
}

// StatusOf returns the fixed message and color for a tier.
func StatusOf(t domain.StatusTier) domain.DerivedStatus {
	if st, ok := statuses[t]; ok {
		return st
	}
	return statuses[domain.TierNeedsImprovement]
}

// FormatDuration renders minutes as "1h 30m", "2h" or "45m" after rounding
// half-up to a whole minute. Negative or NaN input renders as "0m" and
// oversized input saturates.
func FormatDuration(minutes float64) string {
	m := roundHalfUp(minutes)
	if m < 0 {
		m = 0
	}
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, rem)
	}
}

// MostUsedCategory returns the category with the most minutes. Ties go to the
// earlier category in canonical order. ok is false when nothing was tracked.
func MostUsedCategory(s domain.ActivitySummary) (domain.Category, bool) {
	best := domain.CategoryOther
	bestMin := -1.0
	for _, c := range domain.CanonicalOrder {
		if m := s.Categories.Minutes(c); m > bestMin {
			best, bestMin = c, m
		}
	}
	if bestMin <= 0 {
		return "", false
	}
	return best, true
}

// MostUsedApp returns the application with the most accumulated minutes.
// Ties resolve alphabetically; records without an app name are ignored.
func MostUsedApp(records []domain.UsageRecord) (string, bool) {
	totals := map[string]float64{}
	for _, r := range sortedRecords(records) {
		if r.AppName == "" || r.DurationSeconds <= 0 {
			continue
		}
		totals[r.AppName] += r.Minutes()
	}
	if len(totals) == 0 {
		return "", false
	}
	apps := make([]string, 0, len(totals))
	for a := range totals {
		apps = append(apps, a)
	}
	sort.Strings(apps)
	best := apps[0]
	for _, a := range apps[1:] {
		if totals[a] > totals[best] {
			best = a
		}
	}
	return best, true
}
