package formatter

import (
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierStyle returns the style matching the status color of a tier.
func TierStyle(t domain.StatusTier) lipgloss.Style {
	switch t {
	case domain.TierExcellent:
		return StyleGreen
	case domain.TierGood:
		return StyleBlue
	case domain.TierAverage:
		return StyleYellow
	default:
		return StyleRed
	}
}

// TierIndicator returns a colored indicator such as "● GOOD".
func TierIndicator(t domain.StatusTier) string {
	label := strings.ToUpper(strings.ReplaceAll(string(t), "-", " "))
	if label == "" {
		label = "UNKNOWN"
	}
	return TierStyle(t).Render("● " + label)
}

// CategoryStyle colors a category consistently across tables and charts.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryStudy:
		return StyleGreen
	case domain.CategoryEntertainment:
		return StyleRed
	case domain.CategoryWork:
		return StyleBlue
	case domain.CategorySocial:
		return StylePurple
	case domain.CategoryProductivity:
		return StyleAqua
	case domain.CategoryGaming:
		return StyleYellow
	default:
		return StyleDim
	}
}

// CategoryLabel renders a capitalized, colored category name.
func CategoryLabel(c domain.Category) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	s := string(c)
	return CategoryStyle(c).Render(strings.ToUpper(s[:1]) + s[1:])
}

// ConnectionIndicator renders the live/offline badge of the watch view.
func ConnectionIndicator(connected bool) string {
	if connected {
		return StyleGreen.Render("● Connected")
	}
	return StyleRed.Render("○ Disconnected")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
