package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// Palette in 256-colour codes.
const (
	skyBg    = lipgloss.Color("153")
	floorFg  = lipgloss.Color("28")
	floorBg  = lipgloss.Color("22")
	ballFg   = lipgloss.Color("214")
	onionFg  = lipgloss.Color("183")
	pepperFg = lipgloss.Color("160")
	stemFg   = lipgloss.Color("34")
	ink      = lipgloss.Color("16")
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorSky:        lipgloss.NewStyle().Background(skyBg),
	core.ColorFloor:      lipgloss.NewStyle().Foreground(floorFg).Background(floorBg),
	core.ColorBall:       lipgloss.NewStyle().Foreground(ballFg).Background(skyBg),
	core.ColorFace:       lipgloss.NewStyle().Foreground(ink).Background(ballFg).Bold(true),
	core.ColorSlowEnemy:  lipgloss.NewStyle().Foreground(onionFg).Background(skyBg),
	core.ColorFastEnemy:  lipgloss.NewStyle().Foreground(pepperFg).Background(skyBg),
	core.ColorStem:       lipgloss.NewStyle().Foreground(stemFg).Background(skyBg).Bold(true),
	core.ColorPopup:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(skyBg).Bold(true),
	core.ColorChainPopup: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Background(skyBg).Bold(true),
	core.ColorText:       lipgloss.NewStyle().Foreground(ink).Background(lipgloss.Color("255")),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Background(skyBg),
}

// footerStyle frames the help line below the game.
var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
