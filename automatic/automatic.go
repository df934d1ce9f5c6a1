// Package automatic plays many opening turns unattended, logging every move
// and summarizing the scores.
package automatic

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/equity"
	"github.com/crossrow/opener/game"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/movegen"
	"github.com/crossrow/opener/stats"
	"github.com/crossrow/opener/tilemapping"
)

// LogHeader is the first line of a turn log.
const LogHeader = "turn,rack,word,offset,score\n"

var (
	TurnCounter *expvar.Int
	IsPlaying   *expvar.Int
)

// running is held for the whole of a Run; IsPlaying only counts busy workers.
var running atomic.Bool

var ErrAlreadyPlaying = errors.New("turns are already being played, please wait till complete")

func init() {
	TurnCounter = expvar.NewInt("turnCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Runner plays independent opening turns: each one draws a fresh rack from
// a full bag and plays the best move on an empty row.
type Runner struct {
	cfg *config.Config
	lex movegen.WordIndex
	ld  *tilemapping.LetterDistribution

	newRandomizer func(worker int) tilemapping.Randomizer
}

func NewRunner(cfg *config.Config, lex movegen.WordIndex, ld *tilemapping.LetterDistribution) *Runner {
	return &Runner{
		cfg: cfg,
		lex: lex,
		ld:  ld,
		newRandomizer: func(int) tilemapping.Randomizer {
			return tilemapping.DefaultRandomizer()
		},
	}
}

// SetRandomizerFactory sets how each worker gets its randomness. Workers
// are numbered from 1.
func (r *Runner) SetRandomizerFactory(f func(worker int) tilemapping.Randomizer) {
	r.newRandomizer = f
}

// turnLine formats one turn for the log. A turn with no move has an empty
// word and offset.
func turnLine(turn int, rack tilemapping.Rack, m *move.ScoredMove) string {
	if m == nil {
		return fmt.Sprintf("%d,%s,,,0\n", turn, rack)
	}
	return fmt.Sprintf("%d,%s,%s,%d,%d\n", turn, rack, m.Word, m.Offset, m.Score)
}

// Run plays numTurns turns on threads workers and writes one log line per
// turn to w, which may be nil. If ctx is canceled, Run stops queueing turns
// and returns the summary of the turns played so far along with ctx.Err().
func (r *Runner) Run(ctx context.Context, numTurns, threads int, w io.Writer) (*stats.Summary, error) {
	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer running.Store(false)
	if threads < 1 {
		threads = 1
	}
	if w == nil {
		w = io.Discard
	}
	log.Debug().Int("turns", numTurns).Int("threads", threads).Msg("starting autoplay")

	TurnCounter.Set(0)
	summary := stats.NewSummary()
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)

	loggerDone := make(chan error, 1)
	go func() {
		bw := bufio.NewWriter(w)
		_, err := bw.WriteString(LogHeader)
		for msg := range logChan {
			if err == nil {
				_, err = bw.WriteString(msg)
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		loggerDone <- err
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numTurns; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Int("queued", i-1).Msg("got stop signal, exiting soon...")
				return nil
			}
			if i%1000 == 0 {
				log.Debug().Msgf("queued %v turns", i)
			}
		}
		return nil
	})

	for i := 1; i <= threads; i++ {
		gm := game.NewGame(r.cfg, r.lex, r.ld, r.newRandomizer(i))
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for turn := range jobs {
				rack, err := gm.DrawRack()
				if err != nil {
					return err
				}
				m, err := gm.PlayBest(context.Background())
				switch {
				case err == nil:
					summary.Add(m.Score)
				case errors.Is(err, equity.ErrNoMoves), errors.Is(err, context.DeadlineExceeded):
					log.Debug().Err(err).Int("turn", turn).Str("rack", rack.String()).Msg("no move")
					summary.AddNoMove()
					m = nil
				default:
					return fmt.Errorf("turn %d, rack %s: %w", turn, rack, err)
				}
				logChan <- turnLine(turn, rack, m)
				TurnCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	close(logChan)
	if lerr := <-loggerDone; err == nil {
		err = lerr
	}
	if err == nil {
		err = ctx.Err()
	}
	log.Info().Int("turns", summary.Turns()).Int("no-moves", summary.NoMoves()).
		Float64("mean", summary.Mean()).Msg("autoplay finished")
	return summary, err
}
