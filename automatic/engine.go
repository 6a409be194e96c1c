package automatic

import (
	"context"
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"

	"github.com/solitario/tresraya/ai/minimax"
	"github.com/solitario/tresraya/game"
	"github.com/solitario/tresraya/move"
)

const (
	MinimaxPlayer = "minimax"
	RandomPlayer  = "random"
)

// An Engine supplies moves for one seat of an automatic game.
type Engine interface {
	Name() string
	ChooseMove(ctx context.Context, g *game.Game) (move.Move, error)
}

// NewEngine maps an engine name to an implementation. A non-zero
// seed makes the random engine reproducible.
func NewEngine(name string, seed int64) (Engine, error) {
	switch name {
	case MinimaxPlayer:
		return &minimaxEngine{}, nil
	case RandomPlayer:
		rng := frand.New()
		if seed != 0 {
			sb := make([]byte, 32)
			binary.LittleEndian.PutUint64(sb, uint64(seed))
			rng = frand.NewCustom(sb, 1024, 12)
		}
		return &randomEngine{rng: rng}, nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

// minimaxEngine plays perfectly. The solver maximizes for whichever
// symbol is on turn when it is asked.
type minimaxEngine struct {
	solver minimax.Solver
}

func (e *minimaxEngine) Name() string { return MinimaxPlayer }

func (e *minimaxEngine) ChooseMove(ctx context.Context, g *game.Game) (move.Move, error) {
	stm := g.SymbolOnTurn()
	if err := e.solver.Init(g.Board(), stm, stm.Opponent()); err != nil {
		return move.None, err
	}
	return e.solver.BestMove(ctx)
}

// randomEngine picks a uniformly random legal move.
type randomEngine struct {
	rng *frand.RNG
}

func (e *randomEngine) Name() string { return RandomPlayer }

func (e *randomEngine) ChooseMove(ctx context.Context, g *game.Game) (move.Move, error) {
	legal := g.Board().LegalMoves()
	if len(legal) == 0 {
		return move.None, minimax.ErrNoLegalMove
	}
	return legal[e.rng.Intn(len(legal))], nil
}
