package board

import (
	"fmt"
	"strings"
)

// ToDisplayText returns the pretty-printed 3x3 grid.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&str, " %s | %s | %s \n",
			b.cells[row*3], b.cells[row*3+1], b.cells[row*3+2])
		if row < 2 {
			str.WriteString("---+---+---\n")
		}
	}
	return str.String()
}

// PositionsGuide shows how cells map to the numbers 1 through 9 at
// the prompt.
func PositionsGuide() string {
	return strings.Join([]string{
		"Use these numbers to choose a cell:",
		" 1 | 2 | 3 ",
		"---+---+---",
		" 4 | 5 | 6 ",
		"---+---+---",
		" 7 | 8 | 9 ",
		"",
	}, "\n")
}
