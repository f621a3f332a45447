package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trampoline-arcade/internal/replay"
	"github.com/vovakirdan/trampoline-arcade/internal/storage"
)

var flagReplayLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Manage recorded sessions",
	Long: `Recorded sessions store the seed, configuration and every input, so
they re-simulate to exactly the same result.

Examples:
  arcade replay list
  arcade replay run 3f0c9b2e-...
  arcade replay delete 3f0c9b2e-...`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a recorded session and print its outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayRun,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of sessions to show")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open replay database: %w", err)
	}
	return store, nil
}

func runReplayList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tapes, err := store.ListTapes(cmd.Context(), flagReplayLimit)
	if err != nil {
		return fmt.Errorf("cannot list recordings: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(tapes) == 0 {
		fmt.Fprintln(out, "No recordings yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play with 'arcade play --record' to record a session.")
		return nil
	}

	fmt.Fprintf(out, "  %-36s  %-10s  %-7s  %-9s  %s\n", "ID", "Game", "Frames", "Size", "Recorded")
	fmt.Fprintf(out, "  %-36s  %-10s  %-7s  %-9s  %s\n", "--", "----", "------", "----", "--------")
	for _, t := range tapes {
		size := fmt.Sprintf("%.0fx%.0f", t.Width, t.Height)
		fmt.Fprintf(out, "  %-36s  %-10s  %-7d  %-9s  %s\n",
			t.ID, t.GameID, t.FrameCount, size, t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplayRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tape, err := store.Tape(cmd.Context(), args[0])
	if errors.Is(err, storage.ErrTapeNotFound) {
		return fmt.Errorf("no recording %q: %w", args[0], err)
	}
	if err != nil {
		return fmt.Errorf("cannot load recording: %w", err)
	}

	res, err := replay.Run(tape)
	if err != nil {
		return fmt.Errorf("cannot replay %s: %w", tape.ID, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recording %s (seed %d)\n", tape.ID, tape.Seed)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Score:     %d\n", res.Final.Score)
	fmt.Fprintf(out, "  Stomps:    %d\n", res.Stomps)
	fmt.Fprintf(out, "  Spawns:    %d\n", res.Spawns)
	fmt.Fprintf(out, "  Frames:    %d\n", res.Steps)
	fmt.Fprintf(out, "  Played:    %s\n", tape.Duration().Round(time.Millisecond))
	if res.Final.GameOver {
		fmt.Fprintln(out, "  Ended:     game over")
	} else {
		fmt.Fprintln(out, "  Ended:     quit")
	}
	return nil
}

func runReplayDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.DeleteTape(cmd.Context(), args[0])
	if errors.Is(err, storage.ErrTapeNotFound) {
		return fmt.Errorf("no recording %q: %w", args[0], err)
	}
	if err != nil {
		return fmt.Errorf("cannot delete recording: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted recording %s\n", args[0])
	return nil
}
