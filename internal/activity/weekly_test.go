package activity

import (
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWeeklyRollup_SumsAndPicksMostProductiveDay(t *testing.T) {
	days := [7]domain.DailySummary{
		day(0, 30, 10),
		day(1, 90, 5),
		day(2, 10, 60),
		day(3, 90, 0),
		day(4, 0, 0),
		day(5, 20, 20),
		day(6, 5, 5),
	}
	days[2].MostUsedApp = "YouTube"
	days[1].MostUsedApp = "Anki"

	w := WeeklyRollup(days)

	assert.Equal(t, 245.0, w.StudyMinutes())
	assert.Equal(t, 100.0, w.EntertainmentMinutes())
	assert.Equal(t, 345.0, w.TotalMinutes())
	// Day 1 and day 3 tie on study minutes; the earlier date wins.
	assert.Equal(t, days[1].Date, w.MostProductiveDay)
	assert.Equal(t, days[0].Date, w.WeekStart)
	assert.Equal(t, 2025, w.Year)
	assert.Equal(t, 11, w.Week)
	assert.Equal(t, "Anki", w.MostUsedApp)
	assert.Equal(t, "u1", w.UserID)
}

func TestWeeklyRollup_TieBreakIgnoresInputOrder(t *testing.T) {
	days := [7]domain.DailySummary{
		day(6, 50, 0), day(5, 50, 0), day(4, 0, 0), day(3, 0, 0),
		day(2, 0, 0), day(1, 0, 0), day(0, 0, 0),
	}
	w := WeeklyRollup(days)
	assert.Equal(t, days[1].Date, w.MostProductiveDay)
}

func TestWeeklyRollup_EmptyWeek(t *testing.T) {
	var days [7]domain.DailySummary
	for i, d := range WeekDays(time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)) {
		days[i] = domain.DailySummary{Date: d, ActivitySummary: domain.NewActivitySummary(nil)}
	}
	w := WeeklyRollup(days)
	assert.Zero(t, w.TotalMinutes())
	assert.Equal(t, days[0].Date, w.MostProductiveDay)
}

func TestWeekDays_StartsOnMonday(t *testing.T) {
	// 2025-03-16 is a Sunday.
	days := WeekDays(time.Date(2025, 3, 16, 22, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), days[6])
	assert.Equal(t, time.Monday, days[0].Weekday())
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"01:02:03", 3723, false},
		{"05:30", 330, false},
		{"00:00:00", 0, false},
		{"12", 0, true},
		{"aa:bb", 0, true},
		{"", 0, true},
		{"1:2:3:4", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
