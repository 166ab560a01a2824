package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/trax/internal/domain"
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

// Predefined lipgloss styles.
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

// ModeBadge returns a colored label for a track mode.
func ModeBadge(mode domain.TrackMode) string {
	switch mode {
	case domain.TrackAuto:
		return StyleGreen.Render("● auto")
	case domain.TrackFrom:
		return StyleBlue.Render("▸ from")
	case domain.TrackExplicit:
		return StylePurple.Render("■ explicit")
	default:
		return StyleDim.Render(string(mode))
	}
}

// ErrorStyle picks a color for a failed command: yellow for conditions the
// user can fix by changing the request, red for everything else.
func ErrorStyle(err error) lipgloss.Style {
	switch {
	case errors.Is(err, domain.ErrStaleSession),
		errors.Is(err, domain.ErrOutOfOrder),
		errors.Is(err, domain.ErrFutureTimestamp),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrNoData):
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
