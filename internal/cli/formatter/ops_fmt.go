package formatter

import (
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// FormatIngest reports a stored batch.
func FormatIngest(res *app.IngestResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Stored %d records", StyleGreen.Render("✔"), res.Inserted)
	if len(res.Dates) > 0 {
		fmt.Fprintf(&b, " across %d day(s): %s", len(res.Dates), Dim(strings.Join(res.Dates, ", ")))
	}
	b.WriteString("\n")
	if res.Clamped > 0 {
		fmt.Fprintf(&b, "%s %d record(s) had negative durations and were counted as zero\n",
			StyleYellow.Render("!"), res.Clamped)
	}
	if res.Skipped > 0 {
		fmt.Fprintf(&b, "%s %d record(s) without an app name were skipped\n",
			StyleYellow.Render("!"), res.Skipped)
	}
	return b.String()
}

// FormatImportErrors lists CSV row problems, capped at limit lines.
func FormatImportErrors(errs []error, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d invalid row(s)\n", StyleRed.Render("✖"), len(errs))
	for i, err := range errs {
		if i == limit {
			fmt.Fprintf(&b, "  %s\n", Dim(fmt.Sprintf("… and %d more", len(errs)-limit)))
			break
		}
		fmt.Fprintf(&b, "  %s\n", err)
	}
	return b.String()
}

// FormatCleanup reports rows removed by retention cleanup.
func FormatCleanup(res *app.CleanupResult) string {
	rows := [][]string{
		{"Activity logs", fmt.Sprint(res.ActivityLogs)},
		{"Phone logs", fmt.Sprint(res.PhoneLogs)},
	}
	if res.DailySummaries > 0 || res.AppUsageRows > 0 {
		rows = append(rows,
			[]string{"Daily summaries", fmt.Sprint(res.DailySummaries)},
			[]string{"App usage rows", fmt.Sprint(res.AppUsageRows)},
		)
	}
	return Header("Cleanup") + "\n" + Dim("Removed data before "+res.Cutoff) + "\n\n" +
		Table{Headers: []string{"TABLE", "DELETED"}, Rows: rows, Right: []int{1}}.Render()
}

// FormatClassification shows the category a label resolves to.
func FormatClassification(label string, c domain.Category) string {
	return fmt.Sprintf("%s %s %s\n", StyleFg.Render(label), Dim("→"), CategoryLabel(c))
}
