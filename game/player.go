package game

import (
	"fmt"

	"github.com/solitario/tresraya/board"
)

// PlayerKind says who supplies the moves for a seat. The game itself
// doesn't care; AI players and human players act outside the scope of
// this package.
type PlayerKind int8

const (
	Human PlayerKind = iota
	Computer
)

func (k PlayerKind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// PlayerInfo is the caller-facing description of one seat.
type PlayerInfo struct {
	Nickname string
	Kind     PlayerKind
}

type playerState struct {
	PlayerInfo

	symbol board.Cell
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%-12v (%v, %v)", onturn, p.Nickname, p.symbol, p.Kind)
}

type playerStates []*playerState
