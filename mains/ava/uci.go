package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SerhiiStets/AVA-chess-engine/dragonboard"
	"github.com/SerhiiStets/AVA-chess-engine/engine"
	"github.com/SerhiiStets/AVA-chess-engine/player"
)

var uciCmd = &cobra.Command{
	Use:   "uci",
	Short: "Talk UCI on stdin and stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := newUCI(os.Stdout, cfg, logger)
		if err != nil {
			return err
		}
		return u.loop(os.Stdin)
	},
}

type uci struct {
	outMu sync.Mutex
	out   io.Writer

	cfg    engine.Config
	logger zerolog.Logger
	player *player.Player
	board  *dragonboard.Board
}

func newUCI(out io.Writer, cfg engine.Config, logger zerolog.Logger) (*uci, error) {
	u := &uci{out: out, logger: logger, board: dragonboard.New()}
	if err := u.configure(cfg); err != nil {
		return nil, err
	}
	return u, nil
}

// println is shared with the search goroutine, which reports bestmove.
func (u *uci) println(a ...interface{}) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, a...)
}

// configure swaps in a new engine; any running search finishes on the old one
// and the game carries on with the new one.
func (u *uci) configure(cfg engine.Config) error {
	e, err := engine.New(cfg, u.logger)
	if err != nil {
		return err
	}
	next := player.New(e, u.logger)
	if u.player != nil {
		u.player.Wait()
		next.Continue(u.player)
	}
	u.cfg = cfg
	u.player = next
	return nil
}

// loop runs until quit or the end of input. A search still running at the end
// of input is allowed to finish.
func (u *uci) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name AVA", VersionString)
			u.println("id author Serhii Stets")
			u.println("option name Preset type combo default", u.cfg.Preset, "var", engine.DualPreset, "var", engine.ClassicPreset)
			u.println("option name MaxDepth type spin default", u.cfg.Time.MaxDepth, "min 1 max 64")
			u.println("option name Algorithm type combo default", string(u.cfg.Search.Algorithm), "var", string(engine.AlphaBetaAlgorithm), "var", string(engine.MiniMaxAlgorithm))
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			// reset the board, in case the GUI skips 'position' after 'newgame'
			u.player.Wait()
			u.board = dragonboard.New()
			u.player.NewGame()
		case "quit":
			u.player.Quit()
			return nil
		case "stop":
			u.player.Stop()
		case "setoption":
			u.setOption(tokens)
		case "go":
			u.goCommand(tokens[1:])
		case "position":
			u.position(tokens[1:])
		default:
			u.println("info string Unknown command:", line)
		}
	}

	u.player.Wait()
	return scanner.Err()
}

func (u *uci) setOption(tokens []string) {
	if len(tokens) != 5 || tokens[1] != "name" || tokens[3] != "value" {
		u.println("info string Malformed setoption command")
		return
	}

	var cfg engine.Config
	switch strings.ToLower(tokens[2]) {
	case "preset":
		preset, err := engine.Preset(strings.ToLower(tokens[4]))
		if err != nil {
			u.println("info string", err)
			return
		}
		cfg = preset
	case "maxdepth":
		depth, err := strconv.Atoi(tokens[4])
		if err != nil || depth < 1 {
			u.println("info string MaxDepth value is not a positive int:", tokens[4])
			return
		}
		cfg = withMaxDepth(u.cfg, depth)
	case "algorithm":
		cfg = u.cfg
		cfg.Search.Algorithm = engine.Algorithm(strings.ToLower(tokens[4]))
	default:
		u.println("info string Unknown UCI option", tokens[2])
		return
	}

	if err := u.configure(cfg); err != nil {
		u.println("info string", err)
		return
	}
	u.logger.Info().Str("option", tokens[2]).Str("value", tokens[4]).Msg("option set")
}

// withMaxDepth caps the time policy at depth, pulling down any threshold deeper than that.
func withMaxDepth(cfg engine.Config, depth int) engine.Config {
	thresholds := make([]engine.DepthThreshold, len(cfg.Time.Thresholds))
	copy(thresholds, cfg.Time.Thresholds)
	for i := range thresholds {
		if thresholds[i].Depth > depth {
			thresholds[i].Depth = depth
		}
	}
	cfg.Time.Thresholds = thresholds
	cfg.Time.MaxDepth = depth
	return cfg
}

func (u *uci) goCommand(tokens []string) {
	var wtime, btime, winc, binc time.Duration
	var infinite bool

	for i := 0; i < len(tokens); i++ {
		option := strings.ToLower(tokens[i])
		var target *time.Duration
		switch option {
		case "infinite":
			infinite = true
			continue
		case "wtime":
			target = &wtime
		case "btime":
			target = &btime
		case "winc":
			target = &winc
		case "binc":
			target = &binc
		default:
			u.println("info string Unknown go subcommand", option)
			continue
		}

		if i+1 == len(tokens) {
			u.println("info string Malformed go command option", option)
			continue
		}
		i++
		ms, err := strconv.Atoi(tokens[i])
		if err != nil {
			u.println("info string Malformed go command option; could not convert", option)
			continue
		}
		*target = time.Duration(ms) * time.Millisecond
	}
	if infinite {
		wtime, btime, winc, binc = 0, 0, 0, 0
	}

	u.player.Go(u.board, wtime, btime, winc, binc, func(move dragon.Move, err error) {
		if err != nil {
			u.println("info string", err)
			u.println("bestmove 0000")
			return
		}
		u.println("bestmove", move.String())
	})
}

func (u *uci) position(tokens []string) {
	if len(tokens) == 0 {
		u.println("info string Malformed position command")
		return
	}

	var board *dragonboard.Board
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		board = dragonboard.New()
	case "fen":
		end := len(rest)
		for i, token := range rest {
			if strings.ToLower(token) == "moves" {
				end = i
				break
			}
		}
		var err error
		board, err = dragonboard.FromFen(strings.Join(rest[:end], " "))
		if err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
		rest = rest[end:]
	default:
		u.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, move := range rest[1:] {
			if err := board.PushUCI(move); err != nil {
				u.println("info string Move", move, "not found for position", board.FEN())
				return
			}
		}
	}

	// the search in flight, if any, keeps the board it was given
	u.board = board
}
