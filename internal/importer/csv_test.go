package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Timestamp,App Name,Window Title,Category
2025-03-10 09:00:00,Code.exe,notes.md - Study,Study
2025-03-10 09:00:05,chrome.exe,"YouTube - Lo-fi, beats",Entertainment
2025-03-10 09:00:10,explorer.exe,Downloads,Uncategorized
`

func TestReadRows_ParsesByHeader(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{
		Line:        3,
		Timestamp:   "2025-03-10 09:00:05",
		AppName:     "chrome.exe",
		WindowTitle: "YouTube - Lo-fi, beats",
		Category:    "Entertainment",
	}, rows[1])
}

func TestReadRows_ColumnOrderIndependent(t *testing.T) {
	in := "Category,Timestamp,App Name\nstudy,2025-03-10 09:00:00,Anki\n"
	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Anki", rows[0].AppName)
	assert.Equal(t, "study", rows[0].Category)
}

func TestReadRows_MissingColumn(t *testing.T) {
	_, err := ReadRows(strings.NewReader("Timestamp,Category\n"))
	assert.ErrorContains(t, err, `"App Name"`)
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestValidateRows_CollectsAllErrors(t *testing.T) {
	errs := ValidateRows([]Row{
		{Line: 2, Timestamp: "yesterday", AppName: "Anki"},
		{Line: 3, Timestamp: "2025-03-10 09:00:00"},
		{Line: 4, Timestamp: "2025-03-10 09:00:00", AppName: "Anki", Duration: "ten"},
		{Line: 5, Timestamp: "2025-03-10 09:00:00", AppName: "Anki"},
	})
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "line 2")
	assert.Contains(t, errs[1].Error(), "app name is required")
	assert.Contains(t, errs[2].Error(), "invalid duration")
}

func TestConvert_DefaultsAndLowercase(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Empty(t, ValidateRows(rows))

	recs, err := Convert(rows, time.UTC, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), recs[0].Timestamp)
	assert.Equal(t, "study", recs[0].Category)
	assert.Equal(t, "uncategorized", recs[2].Category)
	for _, r := range recs {
		assert.Equal(t, DefaultRowSeconds, r.DurationSeconds)
	}
}

func TestConvert_DurationColumn(t *testing.T) {
	recs, err := Convert([]Row{{Line: 2, Timestamp: "2025-03-10 09:00:00", AppName: "Anki", Duration: "60"}}, time.UTC, 5)
	require.NoError(t, err)
	assert.Equal(t, 60.0, recs[0].DurationSeconds)
}

func TestConvert_NegativeDurationKeepsRow(t *testing.T) {
	in := "Timestamp,App Name,Window Title,Category,Duration Seconds\n" +
		"2025-03-10 09:00:00,Anki,Deck,Study,600\n" +
		"2025-03-10 09:10:00,Anki,Deck,Study,-5\n"
	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Empty(t, ValidateRows(rows))

	recs, err := Convert(rows, time.UTC, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 600.0, recs[0].DurationSeconds)
	assert.Equal(t, -5.0, recs[1].DurationSeconds)
}

func TestCSVJournal_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	j := NewCSVJournal(dir)
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(domain.UsageRecord{Timestamp: ts, AppName: "Anki", WindowTitle: "Deck, Spanish", Category: "study"}))
	require.NoError(t, j.Append(domain.UsageRecord{Timestamp: ts.Add(5 * time.Second), AppName: "Spotify", WindowTitle: "Music", Category: "entertainment"}))

	f, err := os.Open(filepath.Join(dir, "desktop_activity_2025-03-10.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := ReadRows(f)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header is written once")
	assert.Equal(t, "Deck, Spanish", rows[0].WindowTitle)
	assert.Equal(t, "2025-03-10 09:00:05", rows[1].Timestamp)
}
