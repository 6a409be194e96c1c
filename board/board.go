// Package board implements the 3x3 Tic-Tac-Toe board: cell states,
// legal move enumeration, and terminal-state detection. A Board is a
// single mutable resource; during a search it is owned exclusively by
// the call stack mutating it, and every Apply must be paired with
// exactly one Undo before the frame returns.
package board

import (
	"errors"
	"fmt"

	"github.com/solitario/tresraya/move"
)

// A Cell is the state of one square on the board.
type Cell int8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

// Opponent returns the other symbol. The opponent of Empty is Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// winLines are the eight winning triples: three rows, three columns,
// two diagonals. They are scanned in this exact order and the first
// match wins, which also pins down the result for malformed boards
// that somehow contain two lines of different symbols.
var winLines = [8][3]move.Move{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// An Outcome is the terminal status of a board, always recomputed
// from the cells and never stored.
type Outcome int8

const (
	InProgress Outcome = iota
	Draw
	WinX
	WinO
)

// WinnerOutcome maps a winning symbol to its outcome.
func WinnerOutcome(c Cell) Outcome {
	switch c {
	case X:
		return WinX
	case O:
		return WinO
	}
	return InProgress
}

// Winner returns the winning symbol, if this outcome is a win.
func (o Outcome) Winner() (Cell, bool) {
	switch o {
	case WinX:
		return X, true
	case WinO:
		return O, true
	}
	return Empty, false
}

// GameOver reports whether the outcome ends the game.
func (o Outcome) GameOver() bool {
	return o != InProgress
}

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case WinX:
		return "X wins"
	case WinO:
		return "O wins"
	}
	return "in progress"
}

var ErrIllegalMove = errors.New("illegal move")

// A Board is the 3x3 grid. The zero value is an empty board ready to
// play on.
type Board struct {
	cells [move.NumCells]Cell
}

func NewBoard() *Board {
	return &Board{}
}

// FromString builds a board from a 9-character representation in
// row-major order, with 'X', 'O', and any of ' ', '.', '-', '_' for
// an empty cell. Meant for tests and position setup.
func FromString(repr string) (*Board, error) {
	if len(repr) != move.NumCells {
		return nil, fmt.Errorf("board string must have exactly %d characters, got %d",
			move.NumCells, len(repr))
	}
	b := NewBoard()
	for i, r := range repr {
		switch r {
		case 'X', 'x':
			b.cells[i] = X
		case 'O', 'o':
			b.cells[i] = O
		case ' ', '.', '-', '_':
			b.cells[i] = Empty
		default:
			return nil, fmt.Errorf("unparseable cell character %q at index %d", r, i)
		}
	}
	return b, nil
}

// At returns the state of the indexed cell.
func (b *Board) At(m move.Move) Cell {
	return b.cells[m]
}

// LegalMoves returns every empty cell in ascending index order. The
// order matters: the search engine breaks score ties by keeping the
// first move it sees.
func (b *Board) LegalMoves() []move.Move {
	moves := make([]move.Move, 0, move.NumCells)
	for i := move.Move(0); i < move.NumCells; i++ {
		if b.cells[i] == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// Apply places symbol c on cell m. The cell must be empty and the
// index in range; anything else is a caller bug and comes back as an
// ErrIllegalMove.
func (b *Board) Apply(m move.Move, c Cell) error {
	if !m.Valid() {
		return fmt.Errorf("cell %d: %w", m, ErrIllegalMove)
	}
	if c != X && c != O {
		return fmt.Errorf("cannot place symbol %q: %w", c.String(), ErrIllegalMove)
	}
	if b.cells[m] != Empty {
		return fmt.Errorf("cell %d is occupied: %w", m, ErrIllegalMove)
	}
	b.cells[m] = c
	return nil
}

// Undo resets cell m back to empty. It is only valid on a move that
// was previously applied and not yet undone; the search engine uses
// it to backtrack after scoring a subtree.
func (b *Board) Undo(m move.Move) error {
	if !m.Valid() {
		return fmt.Errorf("cell %d: %w", m, ErrIllegalMove)
	}
	if b.cells[m] == Empty {
		return fmt.Errorf("cell %d is already empty: %w", m, ErrIllegalMove)
	}
	b.cells[m] = Empty
	return nil
}

// Outcome checks the eight winning lines in fixed order, returning on
// the first complete one; otherwise Draw if the board is full, and
// InProgress if not.
func (b *Board) Outcome() Outcome {
	for _, line := range winLines {
		c := b.cells[line[0]]
		if c != Empty && c == b.cells[line[1]] && c == b.cells[line[2]] {
			return WinnerOutcome(c)
		}
	}
	if b.IsFull() {
		return Draw
	}
	return InProgress
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// CellsPlayed counts the non-empty cells.
func (b *Board) CellsPlayed() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of this board.
func (b *Board) Copy() *Board {
	c := &Board{}
	c.cells = b.cells
	return c
}

// CopyFrom copies the cells of another board onto this one.
func (b *Board) CopyFrom(other *Board) {
	b.cells = other.cells
}

// Equals compares two boards cell by cell.
func (b *Board) Equals(other *Board) bool {
	return b.cells == other.cells
}

// Clear resets every cell to empty.
func (b *Board) Clear() {
	b.cells = [move.NumCells]Cell{}
}

// String is the compact 9-character representation, the inverse of
// FromString with spaces for empty cells.
func (b *Board) String() string {
	out := make([]byte, move.NumCells)
	for i, c := range b.cells {
		out[i] = c.String()[0]
	}
	return string(out)
}
