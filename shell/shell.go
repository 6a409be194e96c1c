// Package shell implements the interactive console for playing
// Tic-Tac-Toe against the perfect-play engine, or watching engines
// play each other.
package shell

import (
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/solitario/tresraya/config"
	"github.com/solitario/tresraya/game"
)

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("option syntax incorrect; options look like -key value")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

// ShellController owns the readline loop, the current game, and the
// session score.
type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string

	game *game.Game

	// session tallies across games
	humanWins  int
	engineWins int
	draws      int
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	// handle options
	lastWasOption := false
	lastOption := ""
	for _, token := range fields[1:] {
		if strings.HasPrefix(token, "-") {
			lastWasOption = true
			lastOption = token[1:]
			continue
		}
		if lastWasOption {
			options[lastOption] = token
			lastWasOption = false
		} else {
			args = append(args, token)
		}
	}
	if lastWasOption {
		// all options need a value
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{
		cmd:     cmd,
		args:    args,
		options: options,
	}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtresraya>\033[0m ",
		HistoryFile:     cfg.GetString("history-file"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, config: cfg, execPath: execPath}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stderr(), msg)
	io.WriteString(sc.l.Stderr(), "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if errors.Is(err, errNoData) {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	switch cmd.cmd {
	case "new":
		sc.handle(sc.newGame(cmd))
	case "play", "p":
		sc.handle(sc.playHuman(cmd))
	case "ai":
		sc.handle(sc.playEngine(cmd))
	case "show", "s":
		sc.handle(sc.show(cmd))
	case "guide":
		sc.handle(sc.guide(cmd))
	case "undo":
		sc.handle(sc.undo(cmd))
	case "score":
		sc.handle(sc.score(cmd))
	case "set":
		sc.handle(sc.set(cmd))
	case "autoplay":
		sc.handle(sc.autoplay(cmd))
	case "help":
		sc.handle(sc.help(cmd))
	case "exit", "bye", "quit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	default:
		sc.showMessage("command " + cmd.cmd + " not found; try `help`")
	}
	return nil
}

func (sc *ShellController) handle(resp *Response, err error) {
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

// Loop runs the interactive shell until interrupted.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command non-interactively.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.l.Close()
	if err := sc.standardModeSwitch(strings.TrimSpace(line), sig); err != nil {
		log.Error().Err(err).Msg("")
	}
}
