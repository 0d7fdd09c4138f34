package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDay names a calendar day relative to now: "Today", "Yesterday", or
// "Mon, Mar 10" otherwise.
func HumanDay(day, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := day.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return day.Format("Mon, Jan 2")
}

// HumanTimestamp returns a relative age such as "4m ago" for recent times.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case t.IsZero():
		return "never"
	case diff < 0:
		return t.Format("15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}

// Minutes renders fractional minutes the same way the dashboards do.
func Minutes(m float64) string {
	return activity.FormatDuration(m)
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
