package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanDay(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"today", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), "Today"},
		{"yesterday", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "Yesterday"},
		{"older", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), "Mon, Mar 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanDay(tt.day, now))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", HumanTimestamp(time.Time{}, now))
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "4m ago", HumanTimestamp(now.Add(-4*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Mar 10 18:00", HumanTimestamp(now.Add(-48*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Visual St…", Truncate("Visual Studio Code", 10))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestRenderShare(t *testing.T) {
	tests := []struct {
		name   string
		pct    int
		filled int
		label  string
	}{
		{"zero", 0, 0, "  0%"},
		{"half", 50, 5, " 50%"},
		{"full", 100, 10, "100%"},
		{"over clamps", 140, 10, "100%"},
		{"negative clamps", -5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderShare(tt.pct, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.label), got)
		})
	}
}

func TestTierIndicator(t *testing.T) {
	assert.Equal(t, "● NEEDS IMPROVEMENT", stripANSI(TierIndicator(domain.TierNeedsImprovement)))
	assert.Equal(t, "● EXCELLENT", stripANSI(TierIndicator(domain.TierExcellent)))
	assert.Equal(t, "● UNKNOWN", stripANSI(TierIndicator("")))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Gaming", stripANSI(CategoryLabel(domain.CategoryGaming)))
	assert.Equal(t, "--", stripANSI(CategoryLabel("")))
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRowsArePadded(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"only"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "only  ", lines[2])
}
