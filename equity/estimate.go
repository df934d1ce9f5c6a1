// Package equity estimates what words are worth and decides where the best
// one goes on an empty row.
package equity

import (
	"math"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/tilemapping"
)

// DoubleLetterMinLength: words longer than this are assumed to be able to
// land their best letter on a double letter square.
const DoubleLetterMinLength = 4

// WeightFunc maps a letter to a weight.
type WeightFunc func(r rune) int

// EstimateScore sums the point values of word's letters. Words longer than
// DoubleLetterMinLength count their highest letter twice.
func EstimateScore(word string, ld *tilemapping.LetterDistribution) int {
	score, best, n := 0, 0, 0
	for _, r := range word {
		w := ld.Score(r)
		score += w
		if w > best {
			best = w
		}
		n++
	}
	if n > DoubleLetterMinLength {
		score += best
	}
	return score
}

// RackMaxScore is the sum of the rack's tile weights plus its heaviest tile
// once more.
func RackMaxScore(rack tilemapping.Rack, weight WeightFunc) int {
	score, best := 0, 0
	for i := 0; i < rack.NumTiles(); i++ {
		w := weight(rack.Tile(i))
		score += w
		if w > best {
			best = w
		}
	}
	return score + best
}

// RackWeights returns the weight table the config selects for RackMaxScore.
func RackWeights(cfg *config.Config, ld *tilemapping.LetterDistribution) WeightFunc {
	if cfg.GetString(config.ConfigRackWeights) == config.RackWeightsFrequency {
		return ld.Frequency
	}
	return ld.Score
}

// Threshold is floor(fraction * max). A tiny epsilon keeps products such as
// 0.4*45 from flooring to one below the intended integer.
func Threshold(max int, fraction float64) int {
	return int(math.Floor(fraction*float64(max) + 1e-9))
}
