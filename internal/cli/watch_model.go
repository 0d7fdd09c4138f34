package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/ashlinalex1/mindstride/internal/poller"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// snapshotMsg carries an applied poll into the bubbletea loop.
type snapshotMsg poller.Snapshot

type watchKeys struct {
	Refresh key.Binding
	Quit    key.Binding
}

func defaultWatchKeys() watchKeys {
	return watchKeys{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// watchModel is the live dashboard of the watch command.
type watchModel struct {
	spinner  spinner.Model
	keys     watchKeys
	snap     poller.Snapshot
	received bool
	source   string
	now      func() time.Time
	// refresh triggers an out-of-band poll. It must not block.
	refresh func()
}

func newWatchModel(sourceURL string, now func() time.Time, refresh func()) watchModel {
	return watchModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
		keys:    defaultWatchKeys(),
		source:  sourceURL,
		now:     now,
		refresh: refresh,
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.refresh != nil {
				m.refresh()
			}
		}
		return m, nil
	case snapshotMsg:
		m.snap = poller.Snapshot(msg)
		m.received = true
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("MINDSTRIDE"))
	b.WriteString("  ")

	switch {
	case !m.received:
		b.WriteString(m.spinner.View())
		b.WriteString(formatter.Dim(" Connecting to " + m.source))
		b.WriteString("\n")
	case !m.snap.Connected:
		b.WriteString(formatter.ConnectionIndicator(false))
		b.WriteString("\n\n")
		b.WriteString(disconnectedHint(m.source, m.snap.Err))
	default:
		b.WriteString(formatter.ConnectionIndicator(true))
		b.WriteString(formatter.Dim("  updated " + formatter.HumanTimestamp(m.snap.UpdatedAt, m.now())))
		b.WriteString("\n\n")
		b.WriteString(liveSummary(app.NewSummaryView(m.snap.Summary)))
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(helpLine(m.keys.Refresh, m.keys.Quit)))
	b.WriteString("\n")
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func liveSummary(v app.SummaryView) string {
	if !v.HasData {
		return formatter.Dim("Nothing tracked yet today.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", formatter.TierIndicator(v.Status.Tier), v.Status.Message)
	fmt.Fprintf(&b, "%s %s\n\n", formatter.Dim("Total:"), formatter.Bold(v.TotalFormatted))
	fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Study         "), formatter.RenderShare(v.ProductivityPercentage, 24))
	fmt.Fprintf(&b, "%s %s\n\n", formatter.Dim("Entertainment "), formatter.RenderShare(v.EntertainmentPercentage, 24))
	b.WriteString(formatter.FormatCategories(v.Summary))
	if v.MostUsedApp != "" {
		fmt.Fprintf(&b, "\n%s %s\n", formatter.Dim("Most used app:"), v.MostUsedApp)
	}
	return b.String()
}

// disconnectedHint explains how to bring the tracker backend up.
func disconnectedHint(sourceURL string, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cannot reach the tracker backend at %s.\n", formatter.Bold(sourceURL))
	if err != nil {
		fmt.Fprintf(&b, "%s\n", formatter.Dim(err.Error()))
	}
	b.WriteString("\nStart it with " + formatter.StyleBlue.Render("mindstride serve") +
		" and record activity with " + formatter.StyleBlue.Render("mindstride track") + ".\n")
	return b.String()
}

// watchLine is the one-line form of a snapshot used without a terminal.
func watchLine(s poller.Snapshot) string {
	ts := s.UpdatedAt.Format("15:04:05")
	if !s.Connected {
		msg := "unreachable"
		if s.Err != nil {
			msg = s.Err.Error()
		}
		return fmt.Sprintf("%s %s %s", ts, formatter.ConnectionIndicator(false), formatter.Dim(msg))
	}
	v := app.NewSummaryView(s.Summary)
	return fmt.Sprintf("%s %s %s tracked, %d%% study, %s",
		ts, formatter.ConnectionIndicator(true), v.TotalFormatted, v.ProductivityPercentage,
		formatter.TierIndicator(v.Status.Tier))
}
