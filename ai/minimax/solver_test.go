package minimax

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/solitario/tresraya/board"
	"github.com/solitario/tresraya/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func setUpSolver(t *testing.T, repr string, aiSymbol board.Cell) (*Solver, *board.Board) {
	t.Helper()
	b, err := board.FromString(repr)
	if err != nil {
		t.Fatal(err)
	}
	s := &Solver{}
	err = s.Init(b, aiSymbol, aiSymbol.Opponent())
	if err != nil {
		t.Fatal(err)
	}
	return s, b
}

func TestSolveImmediateWin(t *testing.T) {
	is := is.New(t)
	// X completes the top row and wins on the spot.
	s, b := setUpSolver(t, "XX OO    ", board.X)
	before := b.Copy()

	score, m, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, WinScore)
	is.Equal(m, move.Move(2))
	is.True(b.Equals(before)) // the search must leave the board as it found it
}

func TestSolveForcedBlock(t *testing.T) {
	is := is.New(t)
	// X threatens the top row; any O reply other than the block at 2
	// loses immediately, and the block holds a draw.
	s, _ := setUpSolver(t, "XX  O    ", board.O)

	score, m, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, DrawScore)
	is.Equal(m, move.Move(2))
}

func TestSolveEmptyBoardIsDrawn(t *testing.T) {
	is := is.New(t)
	s, b := setUpSolver(t, "         ", board.X)
	before := b.Copy()

	score, m, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, DrawScore)
	// The exact index is pinned only by the ascending tie-break, but
	// it must be a corner or the center.
	corners := map[move.Move]bool{0: true, 2: true, 4: true, 6: true, 8: true}
	is.True(corners[m])
	is.True(b.Equals(before))
	is.True(s.Nodes() > 100000) // full tree, no pruning
}

func TestSolveTerminalPositions(t *testing.T) {
	is := is.New(t)

	s, _ := setUpSolver(t, "XXXOO    ", board.X)
	score, m, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, WinScore)
	is.Equal(m, move.None)

	s, _ = setUpSolver(t, "XXXOO    ", board.O)
	score, m, err = s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, LossScore)
	is.Equal(m, move.None)

	s, _ = setUpSolver(t, "XXOOOXXOX", board.X)
	score, m, err = s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(score, DrawScore)
	is.Equal(m, move.None)
}

func TestBestMoveFallback(t *testing.T) {
	is := is.New(t)

	// Full board: caller contract violation.
	s, _ := setUpSolver(t, "XXOOOXXOX", board.X)
	_, err := s.BestMove(context.Background())
	is.Equal(err, ErrNoLegalMove)

	// Won but not full: the defensive fallback picks the first
	// legal move rather than failing.
	s, _ = setUpSolver(t, "XXXOO    ", board.X)
	m, err := s.BestMove(context.Background())
	is.NoErr(err)
	is.Equal(m, move.Move(5))
}

func TestInitBadSymbols(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := &Solver{}
	is.Equal(s.Init(b, board.X, board.X), ErrBadSymbols)
	is.Equal(s.Init(b, board.Empty, board.O), ErrBadSymbols)
	is.Equal(s.Init(b, board.O, board.Empty), ErrBadSymbols)
}

func TestSolveUninitialized(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	_, _, err := s.Solve(context.Background())
	is.Equal(err, ErrNotInitialized)
}

func TestSolveCancelledContext(t *testing.T) {
	is := is.New(t)
	s, _ := setUpSolver(t, "         ", board.X)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := s.Solve(ctx)
	is.Equal(err, context.Canceled)
}

// walkAdversaries plays the engine's move whenever engineToMove, and
// otherwise tries every legal adversary reply, recursing until the
// game ends. The engine must never end up on the losing side.
func walkAdversaries(b *board.Board, aiSymbol board.Cell, engineToMove bool) error {
	out := b.Outcome()
	if out.GameOver() {
		if winner, won := out.Winner(); won && winner != aiSymbol {
			return fmt.Errorf("engine lost as %v on board %q", aiSymbol, b.String())
		}
		return nil
	}
	if engineToMove {
		s := &Solver{}
		if err := s.Init(b, aiSymbol, aiSymbol.Opponent()); err != nil {
			return err
		}
		m, err := s.BestMove(context.Background())
		if err != nil {
			return err
		}
		if err := b.Apply(m, aiSymbol); err != nil {
			return err
		}
		if err := walkAdversaries(b, aiSymbol, false); err != nil {
			return err
		}
		return b.Undo(m)
	}
	for _, m := range b.LegalMoves() {
		if err := b.Apply(m, aiSymbol.Opponent()); err != nil {
			return err
		}
		if err := walkAdversaries(b, aiSymbol, true); err != nil {
			return err
		}
		if err := b.Undo(m); err != nil {
			return err
		}
	}
	return nil
}

func TestEngineNeverLosesMovingFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive adversary walk")
	}
	if err := walkAdversaries(board.NewBoard(), board.X, true); err != nil {
		t.Fatal(err)
	}
}

func TestEngineNeverLosesMovingSecond(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive adversary walk")
	}
	// Fan the nine adversary openings out; each branch owns its own
	// board.
	g := errgroup.Group{}
	for _, opening := range board.NewBoard().LegalMoves() {
		opening := opening
		g.Go(func() error {
			b := board.NewBoard()
			if err := b.Apply(opening, board.X); err != nil {
				return err
			}
			return walkAdversaries(b, board.O, true)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
