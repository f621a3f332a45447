package replay

import (
	"context"
	"time"

	"github.com/vovakirdan/trampoline-arcade/internal/config"
	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
	"github.com/vovakirdan/trampoline-arcade/internal/loop"
)

// DefaultAutoplayLimit caps headless runs that set no limit of their own.
const DefaultAutoplayLimit = 5 * time.Minute

// AutoplayOptions configures a headless session played by the autopilot.
type AutoplayOptions struct {
	Config config.TrampolineConfig
	Width  float64 // World units
	Height float64 // World units
	Seed   int64
	FPS    int

	// Limit caps simulated time. Zero means DefaultAutoplayLimit.
	Limit time.Duration

	// Clock drives the frames. Nil runs on a virtual clock as fast as possible.
	Clock loop.Clock

	// Bot plays the session. Nil uses trampoline.NewAutopilot.
	Bot *trampoline.Autopilot

	// OnEvent, if set, sees every engine event.
	OnEvent func(core.Event)

	// Render, if set, receives a snapshot after every frame, including the
	// one that ends the game.
	Render func(trampoline.Snapshot)
}

// Autoplay runs one session with the autopilot until the game ends, the
// limit is reached or ctx is done. It returns the outcome and the recorded
// tape, which replays to the same final state.
func Autoplay(ctx context.Context, opts AutoplayOptions) (Result, Tape, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return Result{}, Tape{}, ErrEmptyTape
	}
	cfgData, err := EncodeConfig(opts.Config)
	if err != nil {
		return Result{}, Tape{}, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultAutoplayLimit
	}
	bot := opts.Bot
	if bot == nil {
		bot = trampoline.NewAutopilot()
	}

	var tape Tape
	rec := NewRecorder(trampoline.GameID, cfgData, func(t Tape) { tape = t })
	engine := trampoline.NewEngine(opts.Config, opts.Width, opts.Height, opts.Seed)
	rec.Begin(opts.Seed, opts.Width, opts.Height)

	var res Result
	var played time.Duration
	runner := loop.NewRunner(opts.FPS, func(dt time.Duration) bool {
		in := bot.Decide(engine.Snapshot())
		dtMs := float64(dt) / float64(time.Millisecond)
		rec.Frame(dtMs, in)

		res.Steps++
		for _, ev := range engine.Advance(dtMs, in) {
			switch ev.Kind {
			case core.EventSpawned:
				res.Spawns++
			case core.EventStomped:
				res.Stomps++
			}
			if opts.OnEvent != nil {
				opts.OnEvent(ev)
			}
		}

		played += dt
		return !engine.GameOver() && played < limit
	})
	if opts.Render != nil {
		runner.Render = func() { opts.Render(engine.Snapshot()) }
	}
	if opts.Clock != nil {
		runner.Clock = opts.Clock
	} else {
		runner.Clock = loop.NewVirtualClock(time.Unix(0, 0))
	}

	runErr := runner.Run(ctx)
	res.Final = engine.Snapshot()
	rec.End(res.Final)
	return res, tape, runErr
}
