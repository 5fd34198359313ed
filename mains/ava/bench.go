package main

import (
	"fmt"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/SerhiiStets/AVA-chess-engine/dragonboard"
	"github.com/SerhiiStets/AVA-chess-engine/engine"
)

var (
	benchPlies   int
	benchFen     string
	benchClock   time.Duration
	benchProfile string
	benchDir     string

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Self-play from a position under the profiler",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().IntVar(&benchPlies, "plies", 10, "number of plies to play")
	benchCmd.Flags().StringVar(&benchFen, "fen", dragon.Startpos, "starting position")
	benchCmd.Flags().DurationVar(&benchClock, "clock", time.Minute, "remaining time reported to the engine every move")
	benchCmd.Flags().StringVar(&benchProfile, "profile", "cpu", "cpu, mem or none")
	benchCmd.Flags().StringVar(&benchDir, "profile-dir", ".", "where to write the profile")
}

func runBench(cmd *cobra.Command, args []string) error {
	switch benchProfile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(benchDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(benchDir), profile.NoShutdownHook).Stop()
	case "none":
	default:
		return errors.Errorf("unknown profile %q", benchProfile)
	}

	e, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}
	board, err := dragonboard.FromFen(benchFen)
	if err != nil {
		return err
	}

	return selfPlay(cmd, e, board, benchPlies, engine.Remaining(benchClock))
}

func selfPlay(cmd *cobra.Command, e *engine.Engine, board *dragonboard.Board, plies int, budget engine.Budget) error {
	out := cmd.OutOrStdout()
	start := time.Now()

	for ply := 1; ply <= plies; ply++ {
		move, err := e.Play(cmd.Context(), board, budget)
		if errors.Is(err, engine.ErrGameOver) {
			fmt.Fprintln(out, "game over:", board.FEN())
			break
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, ply, move.String())
		board.Push(move)

		if board.IsInsufficientMaterial() || board.IsSeventyFiveMoves() || board.IsFivefoldRepetition() {
			fmt.Fprintln(out, "draw:", board.FEN())
			break
		}
	}

	fmt.Fprintln(out, "fen", board.FEN(), "took", time.Since(start))
	return nil
}
