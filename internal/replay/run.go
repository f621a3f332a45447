package replay

import (
	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
)

// Result summarizes a re-simulated tape.
type Result struct {
	Final  trampoline.Snapshot
	Steps  int
	Spawns int
	Stomps int
}

// Run re-simulates a tape with its stored configuration and returns the
// final state. Frames after the game ends are ignored.
func Run(tape Tape) (Result, error) {
	if tape.Width <= 0 || tape.Height <= 0 {
		return Result{}, ErrEmptyTape
	}
	cfg, err := DecodeConfig(tape.Config)
	if err != nil {
		return Result{}, err
	}

	engine := trampoline.NewEngine(cfg, tape.Width, tape.Height, tape.Seed)
	var res Result
	for _, f := range tape.Frames {
		if engine.GameOver() {
			break
		}
		if f.IsResize() {
			engine.Resize(f.Width, f.Height)
			continue
		}

		res.Steps++
		for _, ev := range engine.Advance(f.DtMs, f.Input()) {
			switch ev.Kind {
			case core.EventSpawned:
				res.Spawns++
			case core.EventStomped:
				res.Stomps++
			}
		}
	}
	res.Final = engine.Snapshot()
	return res, nil
}
