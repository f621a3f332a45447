package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
	"github.com/vovakirdan/trampoline-arcade/internal/loop"
	"github.com/vovakirdan/trampoline-arcade/internal/replay"
	"github.com/vovakirdan/trampoline-arcade/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimWidth    float64
	flagSimHeight   float64
	flagSimRealtime bool
	flagSimRecord   bool
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless session played by the autopilot",
	Long: `Play one session without a terminal UI. The built-in autopilot steers
onto approaching enemies and jumps to stomp them.

By default the session runs on a virtual clock as fast as the CPU allows;
--realtime paces it at --fps instead.

Examples:
  arcade simulate
  arcade simulate --seed 42 --duration 2m
  arcade simulate --difficulty hard --record
  arcade simulate --realtime --verbose`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Maximum simulated time")
	simulateCmd.Flags().Float64Var(&flagSimWidth, "width", 0, "World width in world units (0 = 80x24 cells)")
	simulateCmd.Flags().Float64Var(&flagSimHeight, "height", 0, "World height in world units (0 = 80x24 cells)")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames on the wall clock")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the session to the replay database")
	simulateCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every game event")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagSimVerbose {
		level = log.DebugLevel
	}
	logger, _, err := newLogger("", "simulate", level)
	if err != nil {
		return err
	}

	trampoline.SetConfigPath(flagConfig)
	trampoline.SetDifficultyPreset(flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := trampoline.LoadConfig()
	width, height := flagSimWidth, flagSimHeight
	if width <= 0 {
		width = 80 * cfg.Layout.UnitsPerCol
	}
	if height <= 0 {
		height = 24 * cfg.Layout.UnitsPerRow
	}

	opts := replay.AutoplayOptions{
		Config: cfg,
		Width:  width,
		Height: height,
		Seed:   seed,
		FPS:    flagFPS,
		Limit:  flagSimDuration,
		OnEvent: func(ev core.Event) {
			logger.Debug(ev.Kind.String(), "detail", ev.Detail, "points", ev.Points, "combo", ev.Combo)
		},
	}
	if flagSimRealtime {
		opts.Clock = loop.SystemClock{}
		opts.Render = printStatus
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "seed", seed, "width", opts.Width, "height", opts.Height, "limit", opts.Limit)
	start := time.Now()
	res, tape, err := replay.Autoplay(ctx, opts)
	if flagSimRealtime {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Info("session finished",
		"score", res.Final.Score,
		"stomps", res.Stomps,
		"spawns", res.Spawns,
		"frames", res.Steps,
		"played", tape.Duration().Round(time.Millisecond),
		"game_over", res.Final.GameOver,
		"took", time.Since(start).Round(time.Millisecond),
	)

	if !flagSimRecord || len(tape.Frames) == 0 {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open replay database: %w", err)
	}
	defer store.Close()

	if err := store.SaveTape(cmd.Context(), tape); err != nil {
		return fmt.Errorf("cannot save recording: %w", err)
	}
	logger.Info("recorded session", "tape", tape.ID)
	return nil
}

// printStatus redraws a one-line live view of the session.
func printStatus(s trampoline.Snapshot) {
	state := "playing"
	if s.GameOver {
		state = "game over"
	}
	fmt.Fprintf(os.Stderr, "\r%-9s  score %6d  combo x%-3d  enemies %2d  %6.1fs",
		state, s.Score, s.Combo, len(s.Enemies), s.Elapsed/1000)
}
