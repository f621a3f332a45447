package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trampoline-arcade/internal/core"
	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
	"github.com/vovakirdan/trampoline-arcade/internal/platform/tui"
	"github.com/vovakirdan/trampoline-arcade/internal/registry"
	"github.com/vovakirdan/trampoline-arcade/internal/replay"
	"github.com/vovakirdan/trampoline-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: trampoline).

Controls:
  Left/Right, A/D   - Move
  Up/Space          - Jump
  Enter/Space       - Play from the title screen
  P/Esc             - Pause
  R                 - Play again (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play
  arcade play --difficulty hard
  arcade play --config ./my-trampoline.yaml
  arcade play --record --log-file ./arcade.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record sessions to the replay database")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write debug events to this file")
}

// recordable is implemented by games that can stream their inputs to a recorder.
type recordable interface {
	SetRecorder(trampoline.Recorder)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := trampoline.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	trampoline.SetConfigPath(flagConfig)
	trampoline.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so events are only logged to a file
	var logger *log.Logger
	logCloser := io.Closer(io.NopCloser(nil))
	if flagLogFile != "" {
		l, closer, logErr := newLogger(flagLogFile, "arcade", log.DebugLevel)
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", logErr)
			os.Exit(1)
		}
		logger, logCloser = l, closer
	}

	var (
		store *storage.Store
		rec   *replay.Recorder
		saved []string
	)
	if flagRecord {
		store, rec, err = openRecorder(game, logger, &saved)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording disabled: %v\n", err)
		}
	}

	runErr := tui.Run(game, cfg, logger)

	// Flush a session left open by quitting mid-game
	if rec != nil {
		rec.Close()
	}
	if store != nil {
		store.Close()
	}
	// Close the log before a possible exit
	logCloser.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	for _, id := range saved {
		fmt.Printf("Recorded session %s\n", id)
	}
	if len(saved) > 0 {
		fmt.Println("Run 'arcade replay list' to see recordings.")
	}
}

// openRecorder attaches a recorder that saves every finished session.
func openRecorder(game registry.Game, logger *log.Logger, saved *[]string) (*storage.Store, *replay.Recorder, error) {
	target, ok := game.(recordable)
	if !ok {
		return nil, nil, fmt.Errorf("game %q cannot be recorded", game.ID())
	}

	cfgData, err := replay.EncodeConfig(trampoline.LoadConfig())
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, err
	}

	rec := replay.NewRecorder(game.ID(), cfgData, func(tape replay.Tape) {
		if saveErr := store.SaveTape(context.Background(), tape); saveErr != nil {
			if logger != nil {
				logger.Error("cannot save recording", "tape", tape.ID, "error", saveErr)
			}
			return
		}
		*saved = append(*saved, tape.ID)
	})
	target.SetRecorder(rec)
	return store, rec, nil
}
