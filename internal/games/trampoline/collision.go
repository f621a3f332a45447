package trampoline

import (
	"math"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// stompWindow reports whether the player's bottom edge swept down through
// the top band of the enemy this tick, within the widened horizontal lane.
// prevY is the player's centre before integration.
func (e *Engine) stompWindow(p Player, prevY float64, en Enemy) bool {
	stomp := e.cfg.Stomp
	top := en.circle().Top()
	band := en.Radius * stomp.BandDepthRatio
	lane := en.Radius * stomp.HorizontalLeniency

	prevBottom := core.NewCircle(p.X, prevY, p.Radius).Bottom()
	bottom := p.circle().Bottom()

	withinLane := math.Abs(p.X-en.X) <= lane
	crossesTop := p.VY > 0 && prevBottom <= top+band && bottom >= top-stomp.Tolerance
	return withinLane && crossesTop
}

// resolveCollisions classifies every overlap with a live enemy, in storage
// order. A stomp needs both the stomp window and a circle overlap; any other
// overlap ends the game and stops the scan. It reports whether the game ended.
func (e *Engine) resolveCollisions(prevY float64) bool {
	w := e.world
	for i := range w.Enemies {
		en := &w.Enemies[i]
		if !en.Alive {
			continue
		}

		overlapping := w.Player.circle().Overlaps(en.circle())
		if overlapping && e.stompWindow(w.Player, prevY, *en) {
			e.stomp(en)
			continue
		}
		if overlapping {
			w.GameOver = true
			e.emit(core.Event{Kind: core.EventGameOver, Detail: e.kindConfig(en.Kind).Name})
			return true
		}
	}
	return false
}

// stomp defeats an enemy, bounces the player and scores the combo.
func (e *Engine) stomp(en *Enemy) {
	w := e.world
	phys := e.cfg.Physics

	en.Alive = false
	en.Falling = true
	en.VY = -phys.JumpPower * phys.EnemyPopFactor
	en.VX *= phys.EnemyDrift

	w.Player.VY = -phys.JumpPower * phys.StompBounce
	w.Player.Grounded = false

	w.Combo++
	params := e.kindConfig(en.Kind)
	points := w.Combo * params.BasePoints
	w.Score += points

	w.Popups = append(w.Popups, Popup{
		X:         en.X,
		Y:         en.Y - en.Radius,
		Value:     points,
		Chain:     w.Combo >= e.cfg.Scoring.ChainMin,
		Remaining: e.cfg.Popups.DurationMs,
		Duration:  e.cfg.Popups.DurationMs,
	})
	e.emit(core.Event{Kind: core.EventStomped, Detail: params.Name, Points: points})
}
