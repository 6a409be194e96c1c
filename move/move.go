// Package move defines the Move type: the choice of a single cell on
// the 3x3 board. Internally moves are 0-based indexes in row-major
// order; everything the user sees is numbered 1 through 9.
//
// Index mapping (0-based):
//
//	0 | 1 | 2
//	--+---+--
//	3 | 4 | 5
//	--+---+--
//	6 | 7 | 8
package move

import (
	"errors"
	"fmt"
)

// A Move is an index into the nine cells of the board.
type Move int8

// None is the absent move. It is returned by the search when the
// position is already terminal.
const None Move = -1

// NumCells is the number of cells on the board, and thus the number
// of distinct moves.
const NumCells = 9

var ErrOutOfRange = errors.New("position out of range")

// Valid reports whether m indexes an actual cell.
func (m Move) Valid() bool {
	return m >= 0 && m < NumCells
}

func (m Move) Row() int {
	return int(m) / 3
}

func (m Move) Col() int {
	return int(m) % 3
}

// UserVisible is the 1-based cell number used in prompts and in the
// position guide.
func (m Move) UserVisible() int {
	return int(m) + 1
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	if m == None {
		return "(none)"
	}
	return fmt.Sprintf("%d (row %d, col %d)", m.UserVisible(), m.Row(), m.Col())
}

// FromUserPosition converts a 1-9 cell number, as typed at the
// prompt, into a Move.
func FromUserPosition(pos int) (Move, error) {
	if pos < 1 || pos > NumCells {
		return None, fmt.Errorf("position %d: %w", pos, ErrOutOfRange)
	}
	return Move(pos - 1), nil
}
