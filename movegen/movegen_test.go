package movegen

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/lexicon"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/testhelpers"
	"github.com/crossrow/opener/tilemapping"
)

func scores(cands []move.Candidate) map[string]int {
	m := map[string]int{}
	for _, c := range cands {
		m[c.Word] = c.Score
	}
	return m
}

func TestGenerateFindsRackWords(t *testing.T) {
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "CAT", "SCAT", "ACTS", "TACOS", "QUILT")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)

	cands := gen.Generate(testhelpers.Rack(t, "CATSXXX"))
	assert.ElementsMatch(t, []string{"ACTS", "CATS", "SCAT"}, move.Words(cands))
	for _, c := range cands {
		assert.Equal(t, 6, c.Score)
	}
	assert.Equal(t, 0, gen.Threshold())
}

func TestGenerateThreshold(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "SCAT", "TAXX")
	gen := NewGenerator(config.DefaultConfig(), lex, ld)

	// max is 30 + 8 = 38, so only words worth 15 or more are kept.
	cands := gen.Generate(testhelpers.Rack(t, "CATSXXX"))
	is.Equal(gen.Threshold(), 15)
	is.Equal(move.Words(cands), []string{"TAXX"})
	is.Equal(cands[0].Score, 18)
}

func TestGenerateKeepsWordAtThreshold(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATX")
	rack := testhelpers.Rack(t, "CATSXXX")

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMinScoreFraction, 13.0/38.0)
	gen := NewGenerator(cfg, lex, ld)
	cands := gen.Generate(rack)
	is.Equal(gen.Threshold(), 13)
	is.Equal(len(cands), 1)
	is.Equal(cands[0], move.Candidate{Word: "CATX", Score: 13})

	cfg.Set(config.ConfigMinScoreFraction, 14.0/38.0)
	gen = NewGenerator(cfg, lex, ld)
	is.Equal(len(gen.Generate(rack)), 0)
	is.Equal(gen.Threshold(), 14)
}

func TestGenerateFrequencyWeights(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigRackWeights, config.RackWeightsFrequency)
	gen := NewGenerator(cfg, lexicon.FromWords("CATS"), ld)

	gen.Generate(testhelpers.Rack(t, "CATSXXX"))
	// 2+9+6+4+1+1+1 = 24, plus 9 for A
	is.Equal(gen.Threshold(), 13)
}

func TestGenerateDedupe(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS")
	rack := testhelpers.Rack(t, "CATSS")

	cfg := testhelpers.NoThresholdConfig()
	gen := NewGenerator(cfg, lex, ld)
	is.Equal(move.Words(gen.Generate(rack)), []string{"CATS"})

	// each S produces its own path
	cfg.Set(config.ConfigDedupeCandidates, false)
	gen = NewGenerator(cfg, lex, ld)
	is.Equal(move.Words(gen.Generate(rack)), []string{"CATS", "CATS"})
}

func TestGenerateWildcard(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "SCAT", "CHAT", "CHATS")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)

	got := scores(gen.Generate(testhelpers.Rack(t, "CAT?")))
	is.Equal(len(got), 3)
	is.Equal(got["CATS"], 6)
	is.Equal(got["SCAT"], 6)
	// the blank scores as the letter it stands for
	is.Equal(got["CHAT"], 9)
}

func TestGenerateWildcardSubstitutionOrder(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "CAPS")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)

	// T is not in the substitution order, so the blank never becomes one.
	is.Equal(move.Words(gen.Generate(testhelpers.Rack(t, "CA?S"))), []string{"CAPS"})
}

func TestGenerateTwoBlanks(t *testing.T) {
	ld := tilemapping.EnglishLetterDistribution()
	cfg := testhelpers.NoThresholdConfig()
	cfg.Set(config.ConfigMinWordLength, 2)
	lex := lexicon.FromWords("ZA", "AA", "QI", "CAT")
	gen := NewGenerator(cfg, lex, ld)

	cands := gen.Generate(testhelpers.Rack(t, "??"))
	assert.ElementsMatch(t, []string{"AA", "QI", "ZA"}, move.Words(cands))
	for _, c := range cands {
		// blanks are estimated as the letters they became
		assert.Equal(t, ld.WordScore(c.Word), c.Score)
	}
}

func TestGenerateKeepsExtending(t *testing.T) {
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("QUILT", "QUILTS")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)

	got := scores(gen.Generate(testhelpers.Rack(t, "QUILTS")))
	assert.Equal(t, map[string]int{"QUILT": 24, "QUILTS": 25}, got)
}

func TestGenerateNoMoves(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "QUILT")
	gen := NewGenerator(config.DefaultConfig(), lex, ld)

	is.Equal(len(gen.Generate(tilemapping.Rack{})), 0)
	is.Equal(gen.NodesVisited(), 1)

	is.Equal(len(gen.Generate(testhelpers.Rack(t, "BCDFG"))), 0)
}

func TestGenerateMinLength(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CAT", "ACT", "CATS")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)
	is.Equal(move.Words(gen.Generate(testhelpers.Rack(t, "CATS"))), []string{"CATS"})
}

func TestGenerateVisitsEveryOrdering(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	gen := NewGenerator(config.DefaultConfig(), lexicon.FromWords(), ld)

	// root, A, AB, B, BA
	gen.Generate(testhelpers.Rack(t, "AB"))
	is.Equal(gen.NodesVisited(), 5)

	// 1 + 3 + 6 + 6
	gen.Generate(testhelpers.Rack(t, "ABC"))
	is.Equal(gen.NodesVisited(), 16)
}

func TestGenerateLeavesRackAlone(t *testing.T) {
	is := is.New(t)
	ld := tilemapping.EnglishLetterDistribution()
	lex := lexicon.FromWords("CATS", "SCAT")
	gen := NewGenerator(testhelpers.NoThresholdConfig(), lex, ld)

	rack := testhelpers.Rack(t, "CAT?S")
	gen.Generate(rack)
	is.Equal(rack.String(), "CAT_S")
	is.Equal(rack.NumBlanks(), 1)

	// the generator can be reused
	first := move.Words(gen.Candidates())
	second := move.Words(gen.Generate(rack))
	is.Equal(first, second)
}
