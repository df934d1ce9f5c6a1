// Package movegen finds every dictionary word that can be spelled with some
// ordered subset of a rack, wildcards included, and keeps the ones worth
// playing.
package movegen

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/equity"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/tilemapping"
)

// WordIndex answers exact-word membership queries. *lexicon.Lexicon
// implements it.
type WordIndex interface {
	HasRunes(word []rune) bool
}

// Generator enumerates candidates for a rack. A Generator reuses its path
// buffer between calls, so it is not safe for concurrent use; create one per
// goroutine. The index and letter distribution may be shared.
type Generator struct {
	index       WordIndex
	ld          *tilemapping.LetterDistribution
	rackWeights equity.WeightFunc

	minLength int
	fraction  float64
	dedupe    bool

	// per-search state
	path       []rune
	threshold  int
	candidates []move.Candidate

	nodesVisited int
	lookupsMade  int
}

// NewGenerator returns a generator configured from cfg.
func NewGenerator(cfg *config.Config, index WordIndex, ld *tilemapping.LetterDistribution) *Generator {
	return &Generator{
		index:       index,
		ld:          ld,
		rackWeights: equity.RackWeights(cfg, ld),
		minLength:   cfg.GetInt(config.ConfigMinWordLength),
		fraction:    cfg.GetFloat64(config.ConfigMinScoreFraction),
		dedupe:      cfg.GetBool(config.ConfigDedupeCandidates),
		path:        make([]rune, 0, tilemapping.RackSize),
	}
}

// Generate returns every dictionary word of at least the minimum length
// that can be built from rack and whose estimated score reaches the
// threshold (see Threshold). Each wildcard is tried as every letter of the
// distribution's substitution order.
func (g *Generator) Generate(rack tilemapping.Rack) []move.Candidate {
	st := time.Now()
	g.path = g.path[:0]
	g.candidates = nil
	g.nodesVisited = 0
	g.lookupsMade = 0
	g.threshold = equity.Threshold(equity.RackMaxScore(rack, g.rackWeights), g.fraction)

	g.gen(rack)

	found := len(g.candidates)
	if g.dedupe {
		g.candidates = lo.UniqBy(g.candidates, func(c move.Candidate) string {
			return c.Word
		})
	}
	log.Debug().Str("rack", rack.String()).Int("threshold", g.threshold).
		Int("nodes", g.nodesVisited).Int("lookups", g.lookupsMade).
		Int("found", found).Int("candidates", len(g.candidates)).
		Dur("elapsed", time.Since(st)).Msg("generated")
	return g.candidates
}

// gen visits one node of the search: the current path is checked against
// the index, then every remaining tile is tried as the next letter. The
// search does not stop at words; longer extensions are explored too.
func (g *Generator) gen(rack tilemapping.Rack) {
	g.nodesVisited++
	g.lookupsMade++
	if g.index.HasRunes(g.path) && len(g.path) >= g.minLength {
		word := string(g.path)
		if score := equity.EstimateScore(word, g.ld); score >= g.threshold {
			g.candidates = append(g.candidates, move.Candidate{Word: word, Score: score})
		}
	}

	for i := 0; i < rack.NumTiles(); i++ {
		rest := rack.Without(i)
		if rack.IsBlank(i) {
			for _, r := range g.ld.SubstitutionOrder() {
				g.path = append(g.path, r)
				g.gen(rest)
				g.path = g.path[:len(g.path)-1]
			}
			continue
		}
		g.path = append(g.path, rack.Tile(i))
		g.gen(rest)
		g.path = g.path[:len(g.path)-1]
	}
}

// Candidates returns the result of the last Generate call.
func (g *Generator) Candidates() []move.Candidate {
	return g.candidates
}

// Threshold is the minimum score used by the last Generate call.
func (g *Generator) Threshold() int {
	return g.threshold
}

// NodesVisited is the number of search nodes the last Generate call visited.
func (g *Generator) NodesVisited() int {
	return g.nodesVisited
}
