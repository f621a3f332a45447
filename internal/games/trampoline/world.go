package trampoline

import (
	"math"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// EnemyKind is the closed set of enemy variants.
type EnemyKind int

const (
	KindSlow EnemyKind = iota // Walks slowly, unlocked from the start
	KindFast                  // Faster and worth more, unlocked by score
)

// String returns the kind's tag.
func (k EnemyKind) String() string {
	switch k {
	case KindSlow:
		return "slow"
	case KindFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Player is the controlled ball.
type Player struct {
	X, Y     float64 // Centre, world units
	VX, VY   float64 // Per reference frame
	Radius   float64
	Grounded bool
}

func (p Player) circle() core.Circle {
	return core.NewCircle(p.X, p.Y, p.Radius)
}

// Enemy is a hazard walking along the floor.
type Enemy struct {
	Kind         EnemyKind
	X, Y         float64
	VX, VY       float64
	Radius       float64
	Alive        bool
	Falling      bool    // Defeated and dropping off screen
	GroundOffset float64 // Lift above the floor line while walking
}

func (e Enemy) circle() core.Circle {
	return core.NewCircle(e.X, e.Y, e.Radius)
}

// Popup is a floating score label.
type Popup struct {
	X, Y      float64
	Value     int
	Chain     bool
	Remaining float64 // Milliseconds left
	Duration  float64 // Total lifetime in milliseconds
}

// World is the full mutable state of one session.
type World struct {
	Width       float64
	Height      float64
	FloorHeight float64
	Elapsed     float64 // Milliseconds simulated since reset
	GameOver    bool

	Player  Player
	Enemies []Enemy
	Popups  []Popup

	Score      int
	Combo      int
	SpawnTimer float64 // Milliseconds since the last spawn
}

// FloorY returns the y-coordinate of the floor surface.
func (w *World) FloorY() float64 {
	return w.Height - w.FloorHeight
}

// BallRadius is the player radius for a viewport. It only changes on resize.
func BallRadius(layout config.TrampolineLayout, width, height float64) float64 {
	return math.Max(layout.BallRadiusMin, math.Min(width, height)*layout.BallRadiusRatio)
}

// FloorHeight is the floor band thickness for a viewport height.
func FloorHeight(layout config.TrampolineLayout, height float64) float64 {
	return math.Round(height * layout.FloorRatio)
}

// clampX keeps a circle of radius r inside [r, width-r]. A world narrower
// than the circle centres it.
func clampX(x, r, width float64) float64 {
	if width < 2*r {
		return width / 2
	}
	return core.ClampF(x, r, width-r)
}
