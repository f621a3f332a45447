package trampoline

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
)

// Input holds the intent flags consumed by one Advance call.
type Input struct {
	Left  bool // Level: held this frame
	Right bool // Level: held this frame
	Jump  bool // Edge: pressed since the previous frame
}

// Engine owns a World and advances it. It performs no I/O and holds no
// goroutines; callers serialize Advance, Jump, Resize and Reset.
type Engine struct {
	cfg        config.TrampolineConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	seed       int64
	world      *World
	events     []core.Event
}

// NewEngine creates an engine for a world of the given size (world units)
// and resets it to the start-of-session state.
func NewEngine(cfg config.TrampolineConfig, width, height float64, seed int64) *Engine {
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		world:      &World{Width: width, Height: height},
	}
	e.ResetWithSeed(seed)
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.TrampolineConfig {
	return e.cfg
}

// Seed returns the seed used by the last reset.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Reset returns the world to its start-of-session state, reseeding the
// spawner with the current seed. Calling it twice yields identical worlds.
func (e *Engine) Reset() {
	if e == nil || e.world == nil {
		return
	}
	e.ResetWithSeed(e.seed)
}

// ResetWithSeed resets the world and switches the spawner to a new seed.
func (e *Engine) ResetWithSeed(seed int64) {
	if e == nil || e.world == nil {
		return
	}
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))

	w := e.world
	layout := e.cfg.Layout
	w.FloorHeight = FloorHeight(layout, w.Height)
	radius := BallRadius(layout, w.Width, w.Height)

	w.Player = Player{
		X:        clampX(w.Width/2, radius, w.Width),
		Y:        w.FloorY() - radius,
		Radius:   radius,
		Grounded: true,
	}
	w.Enemies = nil
	w.Popups = nil
	w.Score = 0
	w.Combo = 0
	w.SpawnTimer = 0
	w.Elapsed = 0
	w.GameOver = false
}

// Resize changes the world dimensions and recomputes the quantities derived
// from them. Score, combo and entities are kept; the player is re-clamped
// into the new bounds. Non-positive sizes are ignored.
func (e *Engine) Resize(width, height float64) {
	if e == nil || e.world == nil || width <= 0 || height <= 0 {
		return
	}
	w := e.world
	w.Width = width
	w.Height = height
	w.FloorHeight = FloorHeight(e.cfg.Layout, height)

	p := &w.Player
	p.Radius = BallRadius(e.cfg.Layout, width, height)
	if floorY := w.FloorY(); p.Y+p.Radius > floorY {
		p.Y = floorY - p.Radius
	}
	p.X = clampX(p.X, p.Radius, width)
}

// Jump applies the jump impulse if the player is standing on the floor.
// It reports whether the jump happened.
func (e *Engine) Jump() bool {
	if e == nil || e.world == nil || e.world.GameOver {
		return false
	}
	p := &e.world.Player
	if !p.Grounded {
		return false
	}
	p.VY = -e.cfg.Physics.JumpPower
	p.Grounded = false
	return true
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool {
	return e == nil || e.world == nil || e.world.GameOver
}

// Score returns the current score.
func (e *Engine) Score() int {
	if e == nil || e.world == nil {
		return 0
	}
	return e.world.Score
}

// Advance moves the simulation forward by dtMs milliseconds of real time.
// All per-frame magnitudes are scaled by dtMs / reference frame, with dtMs
// capped so a stalled frame cannot teleport entities. A jump requested in
// the input is applied after the step, once the floor has been resolved.
// The returned events are owned by the caller.
func (e *Engine) Advance(dtMs float64, in Input) []core.Event {
	if e == nil || e.world == nil || e.world.GameOver {
		return nil
	}
	e.events = nil

	dtMs = math.Min(dtMs, e.cfg.Timing.MaxDeltaMs)
	if dtMs <= 0 || math.IsNaN(dtMs) {
		if in.Jump {
			e.Jump()
		}
		return e.events
	}
	df := dtMs / e.cfg.Timing.ReferenceFrameMs

	w := e.world
	w.Elapsed += dtMs
	prevGrounded := w.Player.Grounded
	prevY := w.Player.Y

	e.integratePlayer(df, in)
	if w.Player.Grounded && !prevGrounded {
		w.Combo = 0
		e.emit(core.Event{Kind: core.EventLanded})
	}

	e.decayPopups(dtMs)
	e.tickSpawner(dtMs)
	e.stepEnemies(df)
	e.cullEnemies()

	if e.resolveCollisions(prevY) {
		return e.events
	}

	if in.Jump {
		e.Jump()
	}
	return e.events
}

// integratePlayer applies steering, gravity, bounds and the floor.
func (e *Engine) integratePlayer(df float64, in Input) {
	phys := e.cfg.Physics
	w := e.world
	p := &w.Player

	if in.Left {
		p.VX = math.Max(p.VX-phys.MoveAccel*df, -phys.MaxSpeed)
	}
	if in.Right {
		p.VX = math.Min(p.VX+phys.MoveAccel*df, phys.MaxSpeed)
	}
	if !in.Left && !in.Right {
		// Exponential decay so a long frame compounds friction
		p.VX *= math.Pow(phys.MoveFriction, df)
	}

	p.VY += phys.Gravity * df
	p.X += p.VX * df
	p.Y += p.VY * df

	p.X = clampX(p.X, p.Radius, w.Width)

	// The floor always wins over gravity
	if floorY := w.FloorY(); p.Y+p.Radius >= floorY {
		p.Y = floorY - p.Radius
		p.VY = 0
		p.Grounded = true
	} else {
		p.Grounded = false
	}
}

// decayPopups ages popups, drifts them upward and drops expired ones.
func (e *Engine) decayPopups(dtMs float64) {
	w := e.world
	live := w.Popups[:0]
	for _, p := range w.Popups {
		p.Remaining -= dtMs
		p.Y -= e.cfg.Popups.DriftPerMs * dtMs
		if p.Remaining > 0 {
			live = append(live, p)
		}
	}
	w.Popups = live
}

func (e *Engine) emit(ev core.Event) {
	ev.Combo = e.world.Combo
	e.events = append(e.events, ev)
}
