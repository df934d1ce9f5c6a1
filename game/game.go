// Package game ties one opening turn together: a bag to draw a rack from,
// the move generator, and the row the chosen word is played on.
package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/crossrow/opener/board"
	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/equity"
	"github.com/crossrow/opener/movegen"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/tilemapping"
)

// Game is the state of a single opening turn. It is not safe for concurrent
// use; automatic play gives every worker its own Game.
type Game struct {
	cfg     *config.Config
	lexicon movegen.WordIndex
	ld      *tilemapping.LetterDistribution

	bag  *tilemapping.Bag
	rack tilemapping.Rack
	row  *board.Row
	gen  *movegen.Generator

	turnnum  int
	lastMove *move.ScoredMove
}

// NewGame returns a game with an empty row and an empty rack. rng drives
// the bag; pass tilemapping.DefaultRandomizer() outside of tests.
func NewGame(cfg *config.Config, lex movegen.WordIndex, ld *tilemapping.LetterDistribution,
	rng tilemapping.Randomizer) *Game {

	return &Game{
		cfg:     cfg,
		lexicon: lex,
		ld:      ld,
		bag:     ld.MakeBag(rng),
		row:     board.NewRow(),
		gen:     movegen.NewGenerator(cfg, lex, ld),
	}
}

// DrawRack puts every tile back in the bag, shuffles, and draws a full rack.
// It also starts a new turn on an empty row.
func (g *Game) DrawRack() (tilemapping.Rack, error) {
	g.bag.Refill()
	tiles, err := g.bag.Draw(tilemapping.RackSize)
	if err != nil {
		return tilemapping.Rack{}, err
	}
	rack, err := tilemapping.NewRack(tiles, g.ld)
	if err != nil {
		return tilemapping.Rack{}, err
	}
	g.startTurn(rack)
	return rack, nil
}

// SetRack sets the rack from user input such as "CAT?XYZ" and starts a new
// turn on an empty row.
func (g *Game) SetRack(s string) error {
	rack, err := tilemapping.RackFromString(s, g.ld)
	if err != nil {
		return err
	}
	g.startTurn(rack)
	return nil
}

func (g *Game) startTurn(rack tilemapping.Rack) {
	g.rack = rack
	g.row.Clear()
	g.lastMove = nil
	g.turnnum++
	log.Debug().Int("turn", g.turnnum).Str("rack", rack.String()).Msg("new-turn")
}

// Reset clears the row and the rack.
func (g *Game) Reset() {
	g.rack = tilemapping.Rack{}
	g.row.Clear()
	g.lastMove = nil
}

// Generate returns every candidate for the current rack.
func (g *Game) Generate() []move.Candidate {
	return g.gen.Generate(g.rack)
}

// Best finds the best move for the current rack without playing it. If the
// search-timeout setting is positive and the search outlasts it, Best gives
// up and returns context.DeadlineExceeded. The abandoned search runs to
// completion in the background on its own generator.
func (g *Game) Best(ctx context.Context) (*move.ScoredMove, error) {
	if d := g.cfg.GetDuration(config.ConfigSearchTimeout); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if ctx.Done() == nil {
		return equity.SelectBest(g.gen.Generate(g.rack), g.ld)
	}

	type result struct {
		m   *move.ScoredMove
		err error
	}
	ch := make(chan result, 1)
	gen := movegen.NewGenerator(g.cfg, g.lexicon, g.ld)
	rack := g.rack
	go func() {
		m, err := equity.SelectBest(gen.Generate(rack), g.ld)
		ch <- result{m, err}
	}()
	select {
	case r := <-ch:
		return r.m, r.err
	case <-ctx.Done():
		log.Debug().Str("rack", rack.String()).Err(ctx.Err()).Msg("search-abandoned")
		return nil, ctx.Err()
	}
}

// PlayBest finds the best move and commits it to the row. On any error,
// equity.ErrNoMoves included, the row is left as it was.
func (g *Game) PlayBest(ctx context.Context) (*move.ScoredMove, error) {
	m, err := g.Best(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.PlayMove(m); err != nil {
		return nil, err
	}
	return m, nil
}

// PlayMove commits m to the row and records its score.
func (g *Game) PlayMove(m *move.ScoredMove) error {
	if err := g.row.Commit(m.Word, m.Offset); err != nil {
		return fmt.Errorf("playing %s: %w", m.Word, err)
	}
	g.row.SetScore(m.Score)
	g.lastMove = m
	log.Debug().Int("turn", g.turnnum).Str("move", m.String()).Msg("played")
	return nil
}

func (g *Game) Rack() tilemapping.Rack {
	return g.rack
}

func (g *Game) Row() *board.Row {
	return g.row
}

func (g *Game) LetterDistribution() *tilemapping.LetterDistribution {
	return g.ld
}

func (g *Game) Config() *config.Config {
	return g.cfg
}

// Turn is the number of racks drawn or set so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// LastMove is the move played this turn, or nil.
func (g *Game) LastMove() *move.ScoredMove {
	return g.lastMove
}

// ToDisplayText renders the row followed by the rack.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.row.String())
	sb.WriteString("\nRack: ")
	sb.WriteString(g.rack.String())
	if g.lastMove != nil {
		sb.WriteString("\nLast move: ")
		sb.WriteString(g.lastMove.String())
	}
	return sb.String()
}
