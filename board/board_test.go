package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solitario/tresraya/move"
)

func TestWinningLines(t *testing.T) {
	// Every one of the 8 triples must be detected for both symbols,
	// with arbitrary filler elsewhere.
	for _, line := range winLines {
		for _, sym := range []Cell{X, O} {
			b := NewBoard()
			for _, m := range line {
				b.cells[m] = sym
			}
			// Scatter some opponent cells on squares off the line.
			placed := 0
			for i := move.Move(0); i < move.NumCells && placed < 2; i++ {
				if b.cells[i] == Empty {
					b.cells[i] = sym.Opponent()
					placed++
				}
			}
			out := b.Outcome()
			winner, ok := out.Winner()
			assert.True(t, ok, "line %v sym %v", line, sym)
			assert.Equal(t, sym, winner, "line %v", line)
			assert.True(t, out.GameOver())
		}
	}
}

func TestOutcomeDraw(t *testing.T) {
	b, err := FromString("XXOOOXXOX")
	require.NoError(t, err)
	assert.Equal(t, Draw, b.Outcome())
	assert.True(t, b.Outcome().GameOver())
	assert.True(t, b.IsFull())
}

func TestOutcomeInProgress(t *testing.T) {
	b, err := FromString("XXOOO X X")
	require.NoError(t, err)
	assert.Equal(t, InProgress, b.Outcome())
	assert.False(t, b.Outcome().GameOver())

	assert.Equal(t, InProgress, NewBoard().Outcome())
}

func TestOutcomeMalformedTwoWinners(t *testing.T) {
	// Never constructed by correct play, but the scan must not
	// panic; the first line in the fixed order wins.
	b, err := FromString("XXXOOO   ")
	require.NoError(t, err)
	assert.Equal(t, WinX, b.Outcome())
}

func TestLegalMoves(t *testing.T) {
	b, err := FromString("X O  X  O")
	require.NoError(t, err)
	assert.Equal(t, []move.Move{1, 3, 4, 6, 7}, b.LegalMoves())

	assert.Len(t, NewBoard().LegalMoves(), 9)

	full, err := FromString("XXOOOXXOX")
	require.NoError(t, err)
	assert.Empty(t, full.LegalMoves())
}

func TestApplyUndoRestores(t *testing.T) {
	b, err := FromString("XO       ")
	require.NoError(t, err)
	before := b.Copy()

	require.NoError(t, b.Apply(4, X))
	assert.Equal(t, X, b.At(4))
	assert.False(t, b.Equals(before))

	require.NoError(t, b.Undo(4))
	assert.True(t, b.Equals(before))
}

func TestApplyIllegal(t *testing.T) {
	b, err := FromString("X        ")
	require.NoError(t, err)

	err = b.Apply(0, O)
	assert.ErrorIs(t, err, ErrIllegalMove)

	err = b.Apply(move.Move(9), O)
	assert.ErrorIs(t, err, ErrIllegalMove)

	err = b.Apply(move.None, O)
	assert.ErrorIs(t, err, ErrIllegalMove)

	err = b.Apply(3, Empty)
	assert.ErrorIs(t, err, ErrIllegalMove)

	// None of the failed applies may have touched the board.
	want, _ := FromString("X        ")
	assert.True(t, b.Equals(want))
}

func TestUndoIllegal(t *testing.T) {
	b := NewBoard()
	assert.ErrorIs(t, b.Undo(0), ErrIllegalMove)
	assert.ErrorIs(t, b.Undo(move.None), ErrIllegalMove)
}

func TestFromString(t *testing.T) {
	b, err := FromString("X.O-_ xo.")
	require.NoError(t, err)
	assert.Equal(t, X, b.At(0))
	assert.Equal(t, O, b.At(2))
	assert.Equal(t, X, b.At(6))
	assert.Equal(t, O, b.At(7))
	assert.Equal(t, Empty, b.At(1))
	assert.Equal(t, 4, b.CellsPlayed())

	_, err = FromString("XX")
	assert.Error(t, err)
	_, err = FromString("XXOOXXOO?")
	assert.Error(t, err)
}

func TestCopyIndependence(t *testing.T) {
	b := NewBoard()
	c := b.Copy()
	require.NoError(t, c.Apply(0, X))
	assert.Equal(t, Empty, b.At(0))

	b.CopyFrom(c)
	assert.Equal(t, X, b.At(0))
	assert.True(t, b.Equals(c))
}

func TestDisplay(t *testing.T) {
	b, err := FromString("XO X O  X")
	require.NoError(t, err)
	expected := " X | O |   \n" +
		"---+---+---\n" +
		" X |   | O \n" +
		"---+---+---\n" +
		"   |   | X \n"
	assert.Equal(t, expected, b.ToDisplayText())
}
