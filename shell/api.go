package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/solitario/tresraya/ai/minimax"
	"github.com/solitario/tresraya/automatic"
	"github.com/solitario/tresraya/board"
	"github.com/solitario/tresraya/game"
	"github.com/solitario/tresraya/move"
)

const defaultAutoplayGames = 100

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// newGame starts a game. `new` or `new ai` plays against the engine
// with the human as X; `new ai ai` lets the engine move first (the
// engine takes X); `new human` is a two-player hotseat game.
func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	mode := "ai"
	first := "me"
	if len(cmd.args) > 0 {
		mode = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		first = cmd.args[1]
	}

	var xinfo, oinfo game.PlayerInfo
	switch mode {
	case "ai":
		switch first {
		case "me":
			xinfo = game.PlayerInfo{Nickname: "you", Kind: game.Human}
			oinfo = game.PlayerInfo{Nickname: "tresraya", Kind: game.Computer}
		case "ai":
			xinfo = game.PlayerInfo{Nickname: "tresraya", Kind: game.Computer}
			oinfo = game.PlayerInfo{Nickname: "you", Kind: game.Human}
		default:
			return nil, errors.New("who starts? say `me` or `ai`")
		}
	case "human":
		xinfo = game.PlayerInfo{Nickname: "player1", Kind: game.Human}
		oinfo = game.PlayerInfo{Nickname: "player2", Kind: game.Human}
	default:
		return nil, errors.New("play vs `ai` or `human`")
	}

	g, err := game.NewGame(xinfo, oinfo)
	if err != nil {
		return nil, err
	}
	sc.game = g

	text := board.PositionsGuide() + "\n" + g.ToDisplayText()
	// If the engine holds X it moves before the first prompt.
	if g.KindOnTurn() == game.Computer {
		engineText, err := sc.engineMove()
		if err != nil {
			return nil, err
		}
		text += engineText
	}
	return msg(text), nil
}

// playHuman applies a 1-9 cell choice for the human on turn, then
// lets the engine answer if it is a computer's turn afterwards.
func (sc *ShellController) playHuman(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, errors.New("the game is over; start another with `new`")
	}
	if sc.game.KindOnTurn() != game.Human {
		return nil, errors.New("it is the engine's turn; use `ai`")
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <1-9>")
	}
	pos, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("please enter a number from 1 to 9: %w", err)
	}
	m, err := move.FromUserPosition(pos)
	if err != nil {
		return nil, err
	}
	if sc.game.Board().At(m) != board.Empty {
		return nil, errors.New("that cell is taken, choose another")
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}

	text := sc.game.ToDisplayText()
	if sc.game.Playing() && sc.game.KindOnTurn() == game.Computer {
		engineText, err := sc.engineMove()
		if err != nil {
			return nil, err
		}
		text += engineText
	}
	sc.recordIfOver()
	return msg(text), nil
}

// playEngine forces the engine to move for the side on turn,
// whoever holds it. Useful as a hint or to let the machine finish a
// hotseat game.
func (sc *ShellController) playEngine(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, errors.New("the game is over; start another with `new`")
	}
	text, err := sc.engineMove()
	if err != nil {
		return nil, err
	}
	sc.recordIfOver()
	return msg(text), nil
}

// engineMove runs the solver for the side on turn and plays the
// returned move.
func (sc *ShellController) engineMove() (string, error) {
	stm := sc.game.SymbolOnTurn()
	solver := &minimax.Solver{}
	if err := solver.Init(sc.game.Board(), stm, stm.Opponent()); err != nil {
		return "", err
	}
	m, err := solver.BestMove(context.Background())
	if err != nil {
		return "", err
	}
	log.Debug().Uint64("nodes", solver.Nodes()).Str("move", m.String()).
		Msg("engine-moved")
	if err := sc.game.PlayMove(m); err != nil {
		return "", err
	}
	return fmt.Sprintf("engine plays %d\n%s", m.UserVisible(), sc.game.ToDisplayText()), nil
}

// recordIfOver folds a finished game into the session score.
func (sc *ShellController) recordIfOver() {
	if sc.game == nil || sc.game.Playing() {
		return
	}
	out := sc.game.Outcome()
	winner, won := out.Winner()
	if !won {
		sc.draws++
		return
	}
	p, err := sc.game.PlayerWithSymbol(winner)
	if err != nil {
		return
	}
	if p.Kind == game.Computer {
		sc.engineWins++
	} else {
		sc.humanWins++
	}
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) guide(cmd *shellcmd) (*Response, error) {
	return msg(board.PositionsGuide()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	// Undo a full round: the engine's reply first, if it moved last.
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	if sc.game.KindOnTurn() == game.Computer && sc.game.Turn() > 0 {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

// set shows or changes a setting. With no arguments it lists every
// setting, with one it shows that setting, with two it sets it.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	settings := sc.config.AllSettings()
	if len(cmd.args) == 0 {
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %v\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		val, ok := settings[key]
		if !ok {
			return nil, fmt.Errorf("unknown setting %q", key)
		}
		return msg(fmt.Sprintf("%s: %v", key, val)), nil
	}
	if len(cmd.args) > 2 {
		return nil, errors.New("usage: set <key> [value]")
	}
	if err := sc.config.SetFromString(key, cmd.args[1]); err != nil {
		return nil, err
	}
	return msg("set " + key + " to " + cmd.args[1]), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	return msg(fmt.Sprintf("session score -- you: %d, engine: %d, draws: %d",
		sc.humanWins, sc.engineWins, sc.draws)), nil
}

// autoplay plays engine-vs-engine games in the background threads.
// `autoplay [engine1] [engine2] -num N -threads T -file F`; engines
// default to minimax vs random.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	engine1 := automatic.MinimaxPlayer
	engine2 := automatic.RandomPlayer
	if len(cmd.args) > 0 {
		engine1 = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		engine2 = cmd.args[1]
	}
	numGames := defaultAutoplayGames
	if v, ok := cmd.options["num"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		numGames = n
	}
	threads := sc.config.GetInt("autoplay-threads")
	if v, ok := cmd.options["threads"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		threads = n
	}
	outputFilename := cmd.options["file"]

	results, err := automatic.StartCompVCompGames(context.Background(), sc.config,
		numGames, threads, engine1, engine2, outputFilename)
	if err != nil {
		return nil, err
	}
	return msg(results.String()), nil
}
