// Package trampoline implements Papi Trampoline: a bouncing ball stomps
// walking vegetables for combo points and loses on any other contact.
//
// Engine holds the simulation; Game adapts it to the arcade platform by
// mapping terminal cells to world units, handling pause and the title
// overlay, and rendering snapshots.
package trampoline

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/registry"
)

// GameID is the registry identifier.
const GameID = "trampoline"

// Recorder receives every input the game feeds into its engine, so a
// session can be re-simulated later.
type Recorder interface {
	Begin(seed int64, width, height float64)
	Frame(dtMs float64, in Input)
	Resize(width, height float64)
	End(final Snapshot)
}

// Game implements registry.Game.
type Game struct {
	engine   *Engine
	cfg      config.TrampolineConfig
	runtime  core.RuntimeConfig
	seeds    *rand.Rand // Source of per-session seeds
	recorder Recorder
	started  bool
	paused   bool
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the configuration the way new games do.
func LoadConfig() config.TrampolineConfig {
	cfg, err := config.LoadTrampoline(configPath)
	if err != nil {
		cfg = config.DefaultTrampolineConfig()
	}
	config.ApplyTrampolinePreset(&cfg, difficultyPreset)
	return cfg
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Papi Trampoline"
}

// SetRecorder attaches a recorder; nil detaches it.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// Reset loads configuration, sizes the world to the screen and shows the
// title overlay.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig()
	g.seeds = rand.New(rand.NewSource(runtime.Seed))

	w, h := g.worldSize(runtime.ScreenW, runtime.ScreenH)
	g.engine = NewEngine(g.cfg, w, h, runtime.Seed)
	g.started = false
	g.paused = false
}

// Start begins a fresh session with the next seed.
func (g *Game) Start() {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}
	g.finishRecording()

	seed := g.seeds.Int63()
	g.engine.ResetWithSeed(seed)
	g.started = true
	g.paused = false

	if g.recorder != nil {
		snap := g.engine.Snapshot()
		g.recorder.Begin(seed, snap.Width, snap.Height)
	}
}

// Step advances the game by one frame of dt real time.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if !g.State().Running() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dtMs := float64(dt) / float64(time.Millisecond)
	input := Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	}
	if g.recorder != nil {
		g.recorder.Frame(dtMs, input)
	}

	events := g.engine.Advance(dtMs, input)
	if g.engine.GameOver() {
		g.finishRecording()
	}

	return core.StepResult{State: g.State(), Events: events}
}

// Resize maps the new screen to world units without resetting the session.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.engine == nil {
		return
	}
	w, h := g.worldSize(screenW, screenH)
	g.engine.Resize(w, h)
	if g.recorder != nil && g.State().Running() {
		g.recorder.Resize(w, h)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Started:  g.started,
		GameOver: g.started && g.engine.GameOver(),
		Paused:   g.paused,
	}
}

// Snapshot returns the engine's render snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

func (g *Game) finishRecording() {
	if g.recorder != nil && g.started {
		g.recorder.End(g.engine.Snapshot())
	}
}

// worldSize converts a terminal size to world units.
func (g *Game) worldSize(screenW, screenH int) (float64, float64) {
	return float64(screenW) * g.cfg.Layout.UnitsPerCol, float64(screenH) * g.cfg.Layout.UnitsPerRow
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
