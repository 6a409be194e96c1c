package game

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board plus a seat summary with a turn
// marker, for the interactive shell.
func (g *Game) ToDisplayText() string {
	var str strings.Builder
	str.WriteString(g.board.ToDisplayText())
	str.WriteString("\n")
	for idx, p := range g.players {
		str.WriteString(p.stateString(g.Playing() && idx == g.onturn))
		str.WriteString("\n")
	}
	if out := g.board.Outcome(); out.GameOver() {
		fmt.Fprintf(&str, "\nGame over after %d moves: %s\n", g.turnnum, out)
	} else {
		fmt.Fprintf(&str, "\nTurn %d: %s (%s) to move\n", g.turnnum+1,
			g.NickOnTurn(), g.SymbolOnTurn())
	}
	return str.String()
}
