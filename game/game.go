// Package game encapsulates the mechanics of one Tic-Tac-Toe game:
// seat assignment, turn alternation, move application with history,
// and end-of-game detection. A Game doesn't care how it is played;
// AI players and human players drive it from outside this package.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/solitario/tresraya/board"
	"github.com/solitario/tresraya/move"
)

// PlayState is whether the game is still going.
type PlayState int8

const (
	StatePlaying PlayState = iota
	StateGameOver
)

var (
	ErrGameOver    = errors.New("the game is over")
	ErrNoMovesMade = errors.New("no moves have been made")
)

// Game controls the business logic of one game: who holds which
// symbol, whose turn it is, and the sequence of moves played. The
// symbol assignment is fixed for the duration of the game; only the
// side to move alternates. X always moves first.
type Game struct {
	board   *board.Board
	players playerStates

	playing PlayState
	onturn  int
	turnnum int
	// history holds every move played and not yet unplayed, in
	// order. It is what makes UnplayLastMove cheap: the whole state
	// is nine cells, so there is no backup stack to keep.
	history []move.Move
}

// NewGame instantiates a game between the two given seats. The first
// seat plays X and moves first.
func NewGame(xPlayer, oPlayer PlayerInfo) (*Game, error) {
	if xPlayer.Nickname == "" || oPlayer.Nickname == "" {
		return nil, errors.New("both players need a nickname")
	}
	g := &Game{
		board: board.NewBoard(),
		players: playerStates{
			{PlayerInfo: xPlayer, symbol: board.X},
			{PlayerInfo: oPlayer, symbol: board.O},
		},
		history: make([]move.Move, 0, move.NumCells),
	}
	g.StartGame()
	return g, nil
}

// StartGame resets the board and history for a fresh game with the
// same seats.
func (g *Game) StartGame() {
	g.board.Clear()
	g.history = g.history[:0]
	g.playing = StatePlaying
	g.onturn = 0
	g.turnnum = 0
	log.Debug().Str("x", g.players[0].Nickname).Str("o", g.players[1].Nickname).
		Msg("game-started")
}

// PlayMove applies a move for the player on turn, records it, and
// flips the turn, ending the game if the board became terminal.
func (g *Game) PlayMove(m move.Move) error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	if err := g.board.Apply(m, g.SymbolOnTurn()); err != nil {
		return err
	}
	g.history = append(g.history, m)
	g.turnnum++

	if out := g.board.Outcome(); out.GameOver() {
		g.playing = StateGameOver
		log.Debug().Str("outcome", out.String()).Int("turns", g.turnnum).
			Msg("game-over")
		return nil
	}
	g.onturn = (g.onturn + 1) % len(g.players)
	return nil
}

// UnplayLastMove restores the state before the most recent move. If
// the game had just ended, it is live again afterwards.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNoMovesMade
	}
	last := g.history[len(g.history)-1]
	if err := g.board.Undo(last); err != nil {
		return err
	}
	g.history = g.history[:len(g.history)-1]
	g.turnnum--
	// A board with a move just removed cannot be terminal.
	if g.playing == StateGameOver {
		g.playing = StatePlaying
	} else {
		g.onturn = (g.onturn + len(g.players) - 1) % len(g.players)
	}
	return nil
}

// Playing reports whether the game still accepts moves.
func (g *Game) Playing() bool {
	return g.playing == StatePlaying
}

// PlayerOnTurn is the seat index (0 = X) of the side to move.
func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

// SymbolOnTurn is the symbol of the side to move.
func (g *Game) SymbolOnTurn() board.Cell {
	return g.players[g.onturn].symbol
}

// NickOnTurn is the nickname of the side to move.
func (g *Game) NickOnTurn() string {
	return g.players[g.onturn].Nickname
}

// KindOnTurn says whether the side to move is driven by a human or
// by the engine.
func (g *Game) KindOnTurn() PlayerKind {
	return g.players[g.onturn].Kind
}

// PlayerWithSymbol returns the seat info holding the given symbol.
func (g *Game) PlayerWithSymbol(c board.Cell) (PlayerInfo, error) {
	for _, p := range g.players {
		if p.symbol == c {
			return p.PlayerInfo, nil
		}
	}
	return PlayerInfo{}, fmt.Errorf("no player holds symbol %q", c.String())
}

// Outcome recomputes the terminal status from the board.
func (g *Game) Outcome() board.Outcome {
	return g.board.Outcome()
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// History returns the moves played so far, oldest first. The caller
// must not mutate it.
func (g *Game) History() []move.Move {
	return g.history
}

// Board exposes the underlying board. The search engine mutates it
// in place during its turn, restoring it before returning.
func (g *Game) Board() *board.Board {
	return g.board
}
