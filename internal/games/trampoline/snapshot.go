package trampoline

// Snapshot is a read-only copy of the world for renderers and bots.
// It shares no memory with the engine.
type Snapshot struct {
	Width       float64
	Height      float64
	FloorHeight float64
	FloorY      float64
	Elapsed     float64

	Player  PlayerView
	Enemies []EnemyView
	Popups  []PopupView

	Score    int
	Combo    int
	GameOver bool
}

// PlayerView is the rendered part of the player.
type PlayerView struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Grounded bool
}

// EnemyView is the rendered part of an enemy.
type EnemyView struct {
	Kind    EnemyKind
	X, Y    float64
	VX      float64
	Radius  float64
	Falling bool
}

// PopupView is the rendered part of a popup. Life runs from 1 to 0.
type PopupView struct {
	X, Y  float64
	Value int
	Chain bool
	Life  float64
}

// Snapshot returns the current render snapshot. A nil or uninitialised
// engine yields the zero snapshot.
func (e *Engine) Snapshot() Snapshot {
	if e == nil || e.world == nil {
		return Snapshot{}
	}
	w := e.world
	p := w.Player

	snap := Snapshot{
		Width:       w.Width,
		Height:      w.Height,
		FloorHeight: w.FloorHeight,
		FloorY:      w.FloorY(),
		Elapsed:     w.Elapsed,
		Player: PlayerView{
			X: p.X, Y: p.Y,
			VX: p.VX, VY: p.VY,
			Radius:   p.Radius,
			Grounded: p.Grounded,
		},
		Enemies:  make([]EnemyView, 0, len(w.Enemies)),
		Popups:   make([]PopupView, 0, len(w.Popups)),
		Score:    w.Score,
		Combo:    w.Combo,
		GameOver: w.GameOver,
	}

	for _, en := range w.Enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			Kind:    en.Kind,
			X:       en.X,
			Y:       en.Y,
			VX:      en.VX,
			Radius:  en.Radius,
			Falling: en.Falling,
		})
	}
	for _, pop := range w.Popups {
		life := 0.0
		if pop.Duration > 0 {
			life = max(0, pop.Remaining/pop.Duration)
		}
		snap.Popups = append(snap.Popups, PopupView{
			X:     pop.X,
			Y:     pop.Y,
			Value: pop.Value,
			Chain: pop.Chain,
			Life:  life,
		})
	}
	return snap
}
