package formatter

import (
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/app"
)

// FormatPhoneToday renders the last 24 hours of phone usage.
func FormatPhoneToday(v *app.PhoneToday) string {
	if v.TotalApps == 0 {
		return RenderBox("Phone · today", Dim(v.Message))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %d\n\n",
		Dim("Screen time:"), Bold(Minutes(v.TotalMinutes)),
		Dim("Apps:"), v.TotalApps)

	rows := make([][]string, 0, len(v.TopApps))
	for i, a := range v.TopApps {
		rows = append(rows, []string{fmt.Sprintf("%d.", i+1), a.App, Minutes(a.Minutes)})
	}
	b.WriteString(Table{Headers: []string{"#", "APP", "TIME"}, Rows: rows, Right: []int{2}}.Render())
	return RenderBox("Phone · today", strings.TrimRight(b.String(), "\n"))
}

// FormatPhoneWeekly renders one line per day with its top app.
func FormatPhoneWeekly(v *app.PhoneWeekly) string {
	rows := make([][]string, 0, len(v.WeeklyData))
	var total float64
	for _, d := range v.WeeklyData {
		total += d.Minutes
		top := d.TopApp
		if d.Minutes == 0 {
			top = Dim(top)
		}
		rows = append(rows, []string{d.Day, Dim(d.Date), Minutes(d.Minutes), top})
	}
	t := Table{Headers: []string{"DAY", "DATE", "TIME", "TOP APP"}, Rows: rows, Right: []int{2}}
	return Header("Phone · last 7 days") + "\n\n" + t.Render() +
		"\n" + Dim("Total: ") + Bold(Minutes(total)) + "\n"
}
