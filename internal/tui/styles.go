package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic color palette - use these consistently across output.
const (
	ColorBrand     = "42"  // Green - success states
	ColorSecondary = "245" // Light gray - supporting text
	ColorMuted     = "240" // Dark gray - hints, less important info
	ColorError     = "203" // Red - errors, failures
	ColorAccent    = "45"  // Cyan - highlights (use sparingly)
)

// Palette holds the styles bound to one output stream.
type Palette struct {
	Success   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Accent    lipgloss.Style
	Bold      lipgloss.Style
}

// NewPalette builds styles that render for w. With color disabled every
// style renders its input unchanged.
func NewPalette(w io.Writer, color bool) Palette {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return Palette{
		Success:   r.NewStyle().Foreground(lipgloss.Color(ColorBrand)),
		Secondary: r.NewStyle().Foreground(lipgloss.Color(ColorSecondary)),
		Muted:     r.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
		Error:     r.NewStyle().Foreground(lipgloss.Color(ColorError)),
		Accent:    r.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		Bold:      r.NewStyle().Bold(true),
	}
}

// StatusIcon returns the appropriate icon for a status.
func (p Palette) StatusIcon(success bool) string {
	if success {
		return p.Success.Render("✓")
	}
	return p.Error.Render("✖")
}

// Bullet returns a muted bullet point.
func (p Palette) Bullet() string {
	return p.Muted.Render("·")
}
