// Package automatic contains the logic for computer vs computer
// Tic-Tac-Toe, used for data collection and for verifying that the
// perfect-play engine really is perfect.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/solitario/tresraya/board"
	"github.com/solitario/tresraya/config"
	"github.com/solitario/tresraya/game"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// GameRunner is the master struct for the automatic game logic. One
// runner owns one game and plays it to completion repeatedly.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan string
	engines [2]Engine
}

// NewGameRunner instantiates and initializes a game runner with the
// two named engines; the first plays X.
func NewGameRunner(logchan chan string, cfg *config.Config, engine1, engine2 string) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(engine1, engine2); err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets up the engines and a fresh game.
func (r *GameRunner) Init(engine1, engine2 string) error {
	var seed int64
	if r.config != nil {
		seed = int64(r.config.GetInt("seed"))
	}
	e1, err := NewEngine(engine1, seed)
	if err != nil {
		return err
	}
	e2, err := NewEngine(engine2, seed)
	if err != nil {
		return err
	}
	r.engines[0] = e1
	r.engines[1] = e2
	r.game, err = game.NewGame(
		game.PlayerInfo{Nickname: e1.Name() + "-X", Kind: game.Computer},
		game.PlayerInfo{Nickname: e2.Name() + "-O", Kind: game.Computer},
	)
	return err
}

// PlayGame plays one full game and returns its outcome. Each call
// starts from a fresh board.
func (r *GameRunner) PlayGame(ctx context.Context) (board.Outcome, error) {
	r.game.StartGame()
	for r.game.Playing() {
		eng := r.engines[r.game.PlayerOnTurn()]
		m, err := eng.ChooseMove(ctx, r.game)
		if err != nil {
			return board.InProgress, err
		}
		if err := r.game.PlayMove(m); err != nil {
			return board.InProgress, err
		}
	}
	out := r.game.Outcome()
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v\n",
			r.engines[0].Name(), r.engines[1].Name(), out, r.game.Turn(),
			r.game.Board().String())
	}
	return out, nil
}

// Results tallies the outcomes of a batch of games.
type Results struct {
	XWins int
	OWins int
	Draws int
	Total int
}

func (r Results) String() string {
	return fmt.Sprintf("%d games: X %d, O %d, draws %d", r.Total, r.XWins, r.OWins, r.Draws)
}

func tally(outcomes []board.Outcome) Results {
	counts := lo.CountValues(outcomes)
	return Results{
		XWins: counts[board.WinX],
		OWins: counts[board.WinO],
		Draws: counts[board.Draw],
		Total: len(outcomes),
	}
}

// StartCompVCompGames plays numGames games between the two named
// engines across the given number of worker threads, optionally
// streaming one log line per game to outputFilename.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, numGames, threads int,
	engine1, engine2, outputFilename string) (Results, error) {

	if IsPlaying.Value() > 0 {
		return Results{}, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	// Fail on bad engine names before any worker starts; a worker
	// dying early would strand the job producer.
	for _, name := range []string{engine1, engine2} {
		if _, err := NewEngine(name, 0); err != nil {
			return Results{}, err
		}
	}

	var logfile *os.File
	var logChan chan string
	var logWg sync.WaitGroup
	if outputFilename != "" {
		var err error
		logfile, err = os.Create(outputFilename)
		if err != nil {
			return Results{}, err
		}
		logChan = make(chan string, 100)
		logWg.Add(1)
		go func() {
			defer logWg.Done()
			for line := range logChan {
				logfile.WriteString(line)
			}
		}()
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan struct{}, 100)
	outcomes := make([]board.Outcome, 0, numGames)
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(threads)

	errChan := make(chan error, threads)
	for i := 1; i <= threads; i++ {
		go func() {
			defer wg.Done()
			r, err := NewGameRunner(logChan, cfg, engine1, engine2)
			if err != nil {
				errChan <- err
				return
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				out, err := r.PlayGame(ctx)
				if err != nil {
					errChan <- err
					return
				}
				CVCCounter.Add(1)
				mu.Lock()
				outcomes = append(outcomes, out)
				mu.Unlock()
			}
		}()
	}

gameLoop:
	for i := 1; i <= numGames; i++ {
		// The send sits inside the select so a cancel still gets
		// through when the job buffer is full and no worker is left
		// to drain it.
		select {
		case jobs <- struct{}{}:
		case <-ctx.Done():
			log.Info().Msg("Got stop signal, exiting soon...")
			break gameLoop
		}
		if i%1000 == 0 {
			log.Info().Msgf("Queued %v jobs", i)
		}
	}
	close(jobs)
	wg.Wait()
	if logChan != nil {
		close(logChan)
		logWg.Wait()
		logfile.Close()
	}

	select {
	case err := <-errChan:
		return Results{}, err
	default:
	}
	results := tally(outcomes)
	log.Info().Msgf("Autoplay complete. %v", results)
	return results, nil
}
