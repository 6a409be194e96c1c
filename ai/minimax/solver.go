// Package minimax implements a perfect-play Tic-Tac-Toe engine: an
// exhaustive minimax search over the full game tree. The tree from an
// empty board is bounded by 9! leaf paths, so there is no pruning,
// transposition table, or depth limiting here.
package minimax

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solitario/tresraya/board"
	"github.com/solitario/tresraya/move"
)

// thanks Wikipedia:
/*
function minimax(node, maximizingPlayer) is
    if node is a terminal node then
        return the value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, minimax(child, FALSE))
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, minimax(child, TRUE))
        return value
*/

const (
	// WinScore, LossScore and DrawScore are the only three leaf
	// values. The engine assigns no partial credit and no depth
	// weighting, so a fast win and a slow win score identically.
	WinScore  = 1
	LossScore = -1
	DrawScore = 0

	// The seeds sit outside the true score range so the first
	// candidate in the loop always replaces them.
	scoreCeil  = 2
	scoreFloor = -2
)

var (
	ErrNoLegalMove    = errors.New("no legal move from this position")
	ErrNotInitialized = errors.New("solver not initialized; call Init first")
	ErrBadSymbols     = errors.New("players must hold the two distinct symbols")
)

// Solver computes the game-theoretically optimal move for the side it
// maximizes for, assuming the opponent also plays optimally. It
// mutates the board it was initialized with during the search, via
// strictly paired apply/undo, and always leaves it as it found it.
// A Solver must not be shared between concurrent searches.
type Solver struct {
	board       *board.Board
	aiSymbol    board.Cell
	humanSymbol board.Cell

	nodes atomic.Uint64
}

// Init initializes the solver for one board and one symbol
// assignment. The assignment is fixed for the life of a game; only
// the side to move alternates.
func (s *Solver) Init(b *board.Board, aiSymbol, humanSymbol board.Cell) error {
	if aiSymbol == board.Empty || humanSymbol == board.Empty || aiSymbol == humanSymbol {
		return ErrBadSymbols
	}
	s.board = b
	s.aiSymbol = aiSymbol
	s.humanSymbol = humanSymbol
	return nil
}

// Nodes returns the number of nodes visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve returns the game-theoretic value of the current position for
// the maximizing side, and the move that preserves that value. For a
// terminal position the move is move.None; callers wanting a move
// must not invoke this on a finished board.
func (s *Solver) Solve(ctx context.Context) (int, move.Move, error) {
	if s.board == nil {
		return 0, move.None, ErrNotInitialized
	}
	s.nodes.Store(0)
	tstart := time.Now()
	score, m, err := s.search(ctx, true, 0)
	if err != nil {
		return 0, move.None, err
	}
	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Int("score", score).
		Str("move", m.String()).
		Dur("elapsed", time.Since(tstart)).
		Msg("solve-done")
	return score, m, nil
}

// search is the recursive minimax. The board is owned by this call
// stack: each loop iteration applies one move, scores the subtree
// with maximizing flipped, and undoes the move before the next
// sibling is tried.
func (s *Solver) search(ctx context.Context, maximizing bool, depth int) (int, move.Move, error) {
	s.nodes.Add(1)

	out := s.board.Outcome()
	if winner, won := out.Winner(); won {
		if winner == s.aiSymbol {
			return WinScore, move.None, nil
		}
		return LossScore, move.None, nil
	}
	if out == board.Draw {
		return DrawScore, move.None, nil
	}

	best := scoreFloor
	sym := s.aiSymbol
	if !maximizing {
		best = scoreCeil
		sym = s.humanSymbol
	}
	bestMove := move.None

	for _, m := range s.board.LegalMoves() {
		if depth == 0 {
			// The search has no suspension points; the context is
			// only consulted between root branches to keep the
			// solver signature consistent with long-running ones.
			select {
			case <-ctx.Done():
				return 0, move.None, ctx.Err()
			default:
			}
		}
		if err := s.board.Apply(m, sym); err != nil {
			// Only reachable through a bug in LegalMoves or an
			// unpaired undo. Not a recoverable condition.
			return 0, move.None, err
		}
		score, _, err := s.search(ctx, !maximizing, depth+1)
		if uerr := s.board.Undo(m); uerr != nil {
			return 0, move.None, uerr
		}
		if err != nil {
			return 0, move.None, err
		}
		// Strict comparisons: among equal scores the first move in
		// ascending index order is kept. This tie-break is part of
		// the engine's observable behavior.
		if maximizing {
			if score > best {
				best = score
				bestMove = m
			}
		} else {
			if score < best {
				best = score
				bestMove = m
			}
		}
	}
	return best, bestMove, nil
}

// BestMove is the top-level entry for "it is the engine's turn": it
// maximizes for the AI symbol and returns the chosen move. If the
// search produced no move the caller handed us a terminal or full
// board; we fall back to the first legal move, or surface
// ErrNoLegalMove if there is none.
func (s *Solver) BestMove(ctx context.Context) (move.Move, error) {
	score, m, err := s.Solve(ctx)
	if err != nil {
		return move.None, err
	}
	if m == move.None {
		legal := s.board.LegalMoves()
		if len(legal) == 0 {
			return move.None, ErrNoLegalMove
		}
		log.Warn().Str("board", s.board.String()).
			Msg("solve returned no move on a non-full board; falling back")
		return legal[0], nil
	}
	log.Debug().Int("score", score).Str("move", m.String()).Msg("best-move")
	return m, nil
}
