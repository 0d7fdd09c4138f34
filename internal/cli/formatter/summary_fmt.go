package formatter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/pterm/pterm"
)

const shareBarWidth = 20

// FormatDaily renders one day's summary as a boxed breakdown.
func FormatDaily(v *app.DailyView, now time.Time) string {
	day, _ := time.Parse("2006-01-02", v.Date)
	title := HumanDay(day, now) + " · " + v.Date
	if !v.HasData {
		return RenderBox(title, Dim("No activity tracked for this day."))
	}
	return RenderBox(title, summaryBody(v.SummaryView))
}

func summaryBody(v app.SummaryView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", TierIndicator(v.Status.Tier), StyleFg.Render(v.Status.Message))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Total:"), Bold(v.TotalFormatted))

	fmt.Fprintf(&b, "%s %s\n", padLabel("Study"), RenderShare(v.ProductivityPercentage, shareBarWidth))
	fmt.Fprintf(&b, "%s %s\n\n", padLabel("Entertainment"), RenderShare(v.EntertainmentPercentage, shareBarWidth))

	rows := make([][]string, 0, len(domain.CanonicalOrder))
	for _, c := range domain.CanonicalOrder {
		m := v.Summary.Categories.Minutes(c)
		if m <= 0 {
			continue
		}
		rows = append(rows, []string{CategoryLabel(c), Minutes(m)})
	}
	b.WriteString(Table{Headers: []string{"CATEGORY", "TIME"}, Rows: rows, Right: []int{1}}.Render())

	if v.MostUsedApp != "" {
		fmt.Fprintf(&b, "\n%s %s", Dim("Most used app:"), StyleFg.Render(v.MostUsedApp))
	}
	return strings.TrimRight(b.String(), "\n")
}

func padLabel(s string) string {
	return Dim(fmt.Sprintf("%-13s", s))
}

// FormatDays renders a per-day table, oldest first.
func FormatDays(days []app.DailyView) string {
	if len(days) == 0 {
		return Dim("No days to show.") + "\n"
	}
	rows := make([][]string, 0, len(days))
	var total float64
	for _, d := range days {
		total += d.TotalMinutes
		rows = append(rows, []string{
			d.Day,
			Dim(d.Date),
			Minutes(d.StudyMinutes),
			Minutes(d.EntertainmentMinutes),
			Minutes(d.OthersMinutes),
			Bold(d.TotalFormatted),
			TierStyle(d.Status.Tier).Render(fmt.Sprintf("%d%%", d.ProductivityPercentage)),
		})
	}
	t := Table{
		Headers: []string{"DAY", "DATE", "STUDY", "ENTERTAINMENT", "OTHER", "TOTAL", "STUDY %"},
		Rows:    rows,
		Right:   []int{2, 3, 4, 5, 6},
	}
	return Header(fmt.Sprintf("Last %d days", len(days))) + "\n\n" + t.Render() +
		"\n" + Dim("Tracked: ") + Bold(Minutes(total)) + "\n"
}

// FormatWeek renders the ISO week rollup with a horizontal pterm bar chart of
// total minutes per day.
func FormatWeek(v *app.WeeklyView) (string, error) {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Week %d, %d", v.WeekNumber, v.Year)))
	b.WriteString("\n")
	b.WriteString(Dim("Starting " + v.WeekStart))
	b.WriteString("\n\n")

	if !v.HasData {
		b.WriteString(Dim("No activity tracked this week."))
		b.WriteString("\n")
		return b.String(), nil
	}

	chart, err := weekChart(v.Days)
	if err != nil {
		return "", err
	}
	b.WriteString(chart)

	b.WriteString(summaryBody(v.SummaryView))
	b.WriteString("\n")
	if v.MostProductiveDay != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Most productive day:"), StyleGreen.Render(v.MostProductiveDay))
	}
	return b.String(), nil
}

// weekChart charts whole minutes per day. The chart is skipped when every
// day rounds to zero since pterm cannot scale an all-zero range.
func weekChart(days []app.DailyView) (string, error) {
	bars := make(pterm.Bars, 0, len(days))
	peak := 0
	for _, d := range days {
		m := int(math.Round(d.TotalMinutes))
		peak = max(peak, m)
		bars = append(bars, pterm.Bar{Label: d.Day, Value: m})
	}
	if peak == 0 {
		return "", nil
	}
	chart, err := pterm.DefaultBarChart.
		WithHorizontal().
		WithShowValue().
		WithWidth(40).
		WithBars(bars).
		Srender()
	if err != nil {
		return "", fmt.Errorf("rendering week chart: %w", err)
	}
	return chart + "\n", nil
}

// FormatTopApps renders the busiest apps of each category in canonical order.
func FormatTopApps(top map[domain.Category][]domain.AppUsage) string {
	var b strings.Builder
	for _, c := range domain.CanonicalOrder {
		apps := top[c]
		if len(apps) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CategoryLabel(c))
		b.WriteString("\n")
		rows := make([][]string, 0, len(apps))
		for i, a := range apps {
			rows = append(rows, []string{fmt.Sprintf("%d.", i+1), a.AppName, Minutes(a.TotalMinutes)})
		}
		b.WriteString(Table{Headers: []string{"#", "APP", "TIME"}, Rows: rows, Right: []int{2}}.Render())
	}
	if b.Len() == 0 {
		return Dim("No app usage recorded.") + "\n"
	}
	return b.String()
}

// FormatLogs renders raw activity logs, newest first as returned.
func FormatLogs(logs []*domain.ActivityLog) string {
	if len(logs) == 0 {
		return Dim("No activity logs for this day.") + "\n"
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			Dim(l.Timestamp.Format("15:04:05")),
			l.AppName,
			Truncate(l.WindowTitle, 48),
			CategoryLabel(l.Category),
			fmt.Sprintf("%.0fs", l.DurationSeconds),
		})
	}
	return Table{
		Headers: []string{"TIME", "APP", "WINDOW", "CATEGORY", "DURATION"},
		Rows:    rows,
		Right:   []int{4},
	}.Render()
}

// FormatCategories lists categories sorted by minutes, used by the watch view.
func FormatCategories(s domain.ActivitySummary) string {
	type entry struct {
		c domain.Category
		m float64
	}
	entries := make([]entry, 0, len(domain.CanonicalOrder))
	for _, c := range domain.CanonicalOrder {
		if m := s.Categories.Minutes(c); m > 0 {
			entries = append(entries, entry{c, m})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].m > entries[j].m })

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{CategoryLabel(e.c), Minutes(e.m)})
	}
	return Table{Headers: []string{"CATEGORY", "TIME"}, Rows: rows, Right: []int{1}}.Render()
}
