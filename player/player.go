// Package player runs the engine on behalf of a game host: it picks our side's
// clock, tells the engine when a game starts, and lets the host stop a search.
package player

import (
	"context"
	"sync"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/SerhiiStets/AVA-chess-engine/engine"
)

// Notifier is everything a host tells a player besides "move now".
type Notifier interface {
	// A new game starts with the next search.
	NewGame()
	// Cut the current search short; it still answers with a move.
	Stop()
	// Stop and wait for the search to finish.
	Quit()
}

// Mover picks a move in a position; *engine.Engine is the real one.
type Mover interface {
	Play(ctx context.Context, board engine.Board, budget engine.Budget) (dragon.Move, error)
}

type Player struct {
	mover  Mover
	logger zerolog.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	firstMove bool

	searching sync.Mutex
	wg        sync.WaitGroup
}

var _ Notifier = (*Player)(nil)

func New(mover Mover, logger zerolog.Logger) *Player {
	return &Player{mover: mover, logger: logger, firstMove: true}
}

func (p *Player) NewGame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.firstMove = true
}

// Continue picks up the game prev was playing, so a player swapped in mid-game
// does not treat its next search as the game's first move.
func (p *Player) Continue(prev *Player) {
	inGame := prev.InGame()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.firstMove = !inGame
}

// InGame is true once the current game's first search has started.
func (p *Player) InGame() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.firstMove
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Player) Quit() {
	p.Stop()
	p.Wait()
}

// Wait blocks until the search started by Go has reported.
func (p *Player) Wait() {
	p.wg.Wait()
}

// Search picks a move with the clock of the side to move. The first search of
// a game hands the engine the time control instead of a remaining time; with no
// clocks at all the engine gets an open-ended time control.
func (p *Player) Search(ctx context.Context, board engine.Board, wtime, btime, winc, binc time.Duration) (dragon.Move, error) {
	ctx, budget, done := p.start(ctx, board.WhiteToMove(), wtime, btime, winc, binc)
	defer done()
	return p.play(ctx, board, budget)
}

// Go is Search in the background; report gets the result. Any search still
// running is waited for first.
func (p *Player) Go(board engine.Board, wtime, btime, winc, binc time.Duration, report func(dragon.Move, error)) {
	p.Wait()

	ctx, budget, done := p.start(context.Background(), board.WhiteToMove(), wtime, btime, winc, binc)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer done()
		report(p.play(ctx, board, budget))
	}()
}

func (p *Player) play(ctx context.Context, board engine.Board, budget engine.Budget) (dragon.Move, error) {
	p.searching.Lock()
	defer p.searching.Unlock()

	move, err := p.mover.Play(ctx, board, budget)
	if err != nil {
		p.logger.Error().Err(err).Msg("no move")
	}
	return move, err
}

// start registers a cancellable search so Stop can reach it, and works out the budget.
func (p *Player) start(ctx context.Context, white bool, wtime, btime, winc, binc time.Duration) (context.Context, engine.Budget, func()) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	timeLeft, inc := btime, binc
	if white {
		timeLeft, inc = wtime, winc
	}

	var budget engine.Budget
	switch {
	case wtime == 0 && btime == 0:
		budget = engine.TimeControl{}
	case p.firstMove:
		budget = engine.TimeControl{Initial: timeLeft, Increment: inc}
	default:
		budget = engine.Remaining(timeLeft)
	}
	p.firstMove = false
	p.cancel = cancel

	p.logger.Debug().Bool("white", white).Dur("time-left", timeLeft).Dur("inc", inc).Msg("search")

	return ctx, budget, func() {
		cancel()
		p.mu.Lock()
		defer p.mu.Unlock()
		p.cancel = nil
	}
}
