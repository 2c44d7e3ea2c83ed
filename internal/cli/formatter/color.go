package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator such as "● Mastered".
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusMastered:
		return StyleGreen.Render("● Mastered")
	case domain.StatusPracticed:
		return StyleYellow.Render("◐ Practiced")
	case domain.StatusUntouched:
		return StyleDim.Render("○ Untouched")
	default:
		return StyleDim.Render(string(s))
	}
}

// FamilyBadge renders a family name in its badge color.
func FamilyBadge(f domain.Family) string {
	label := f.Label()
	switch f {
	case domain.FamilyScale:
		return StyleBlue.Render(label)
	case domain.FamilyDohnanyi, domain.FamilyHanon:
		return StylePurple.Render(label)
	default:
		return StyleDim.Render("--")
	}
}

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
