package trampoline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// Sprite runes
const (
	BallChar      = '█'
	EnemyChar     = '▓'
	EyeChar       = '•'
	DeadEyeChar   = 'x'
	SmileChar     = '‿'
	OnionStemChar = '^'
	PepperStem    = '╮'
	FloorTopChar  = '▀'
	FloorChar     = '░'
)

// HelpText is the on-screen control hint.
const HelpText = "Arrows: left/right, Up: jump"

// fadeLife is the popup life below which labels are drawn dimmed.
const fadeLife = 0.33

// Falling enemies shake sideways.
const (
	wobbleCells    = 0.6
	wobblePeriodMs = 240
)

// Render draws the world into dst, mapping world units to cells.
func (g *Game) Render(dst *core.Screen) {
	dst.Fill(' ', core.ColorSky)
	if g.engine == nil {
		return
	}

	snap := g.engine.Snapshot()
	v := viewport{col: g.cfg.Layout.UnitsPerCol, row: g.cfg.Layout.UnitsPerRow}

	// Floor
	floorRow := v.y(snap.FloorY)
	dst.DrawHLine(0, floorRow, dst.Width(), FloorTopChar, core.ColorFloor)
	dst.DrawRect(0, floorRow+1, dst.Width(), dst.Height()-floorRow-1, FloorChar, core.ColorFloor)

	for _, en := range snap.Enemies {
		drawEnemy(dst, v, en, snap.Elapsed)
	}
	drawBall(dst, v, snap.Player)
	for _, p := range snap.Popups {
		drawPopup(dst, v, p)
	}

	// HUD
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorText)
	if snap.Combo >= g.cfg.Scoring.ChainMin {
		dst.DrawText(1, 1, fmt.Sprintf("Combo x%d", snap.Combo), core.ColorChainPopup)
	}
	dst.DrawText(dst.Width()-len(HelpText)-1, 0, HelpText, core.ColorDim)

	state := g.State()
	switch {
	case !state.Started:
		drawCenteredMessage(dst, g.Title(), "Press play to bounce around", "Enter / Space: play")
	case state.GameOver:
		drawCenteredMessage(dst, "Game over! Try again?", fmt.Sprintf("Score: %d", snap.Score), "Enter / R: play again")
	case state.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", "")
	}
}

// viewport converts world units to cell coordinates.
type viewport struct {
	col, row float64
}

func (v viewport) x(wx float64) int { return int(wx / v.col) }
func (v viewport) y(wy float64) int { return int(wy / v.row) }

// drawBall renders the player with two eyes and a smile.
func drawBall(dst *core.Screen, v viewport, p PlayerView) {
	cx, cy := p.X/v.col, p.Y/v.row
	rx, ry := p.Radius/v.col, p.Radius/v.row
	dst.FillEllipse(cx, cy, rx, ry, BallChar, core.ColorBall)

	eyeRow := int(cy - ry*0.35)
	eyeGap := max(1, int(rx*0.4))
	dst.SetColor(int(cx)-eyeGap, eyeRow, EyeChar, core.ColorFace)
	dst.SetColor(int(cx)+eyeGap, eyeRow, EyeChar, core.ColorFace)
	dst.SetColor(int(cx), int(cy+ry*0.35), SmileChar, core.ColorFace)
}

// drawEnemy renders a vegetable with its stem. Defeated enemies get crossed
// out eyes and wobble while they fall.
func drawEnemy(dst *core.Screen, v viewport, en EnemyView, elapsedMs float64) {
	color, stem := core.ColorSlowEnemy, rune(OnionStemChar)
	if en.Kind == KindFast {
		color, stem = core.ColorFastEnemy, PepperStem
	}

	cx, cy := en.X/v.col, en.Y/v.row
	if en.Falling {
		cx += wobble(elapsedMs)
	}
	rx, ry := en.Radius/v.col, en.Radius/v.row
	dst.FillEllipse(cx, cy, rx, ry, EnemyChar, color)
	dst.SetColor(int(cx), int(cy-ry)-1, stem, core.ColorStem)

	eye := rune(EyeChar)
	if en.Falling {
		eye = DeadEyeChar
	}
	eyeGap := max(1, int(rx*0.35))
	dst.SetColor(int(cx)-eyeGap, int(cy), eye, core.ColorFace)
	dst.SetColor(int(cx)+eyeGap, int(cy), eye, core.ColorFace)
}

// wobble is the sideways shake of a falling enemy in cells.
func wobble(elapsedMs float64) float64 {
	return wobbleCells * math.Sin(elapsedMs/wobblePeriodMs*2*math.Pi)
}

// drawPopup renders a floating score label centred on its position.
func drawPopup(dst *core.Screen, v viewport, p PopupView) {
	text := "+" + strconv.Itoa(p.Value)
	color := core.ColorPopup
	if p.Chain {
		text = "Chain! " + text
		color = core.ColorChainPopup
	}
	if p.Life < fadeLife {
		color = core.ColorDim
	}
	// Keep labels near the edges fully on screen
	x := core.Clamp(v.x(p.X)-len(text)/2, 0, max(0, dst.Width()-len(text)))
	dst.DrawText(x, v.y(p.Y), text, color)
}

// drawCenteredMessage draws a boxed overlay with up to three lines.
func drawCenteredMessage(dst *core.Screen, title, subtitle, hint string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle), len(hint)) + 4
	boxH := 5
	if hint != "" {
		boxH = 6
	}
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorText)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorText)

	dst.DrawTextCentered(boxY+1, title, core.ColorText)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorText)
	if hint != "" {
		dst.DrawTextCentered(boxY+4, hint, core.ColorDim)
	}
}
