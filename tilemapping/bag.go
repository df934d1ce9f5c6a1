package tilemapping

import (
	"fmt"

	"lukechampine.com/frand"
)

// Randomizer is the randomness a Bag draws with. *frand.RNG and *rand.Rand
// both satisfy it.
type Randomizer interface {
	Intn(n int) int
}

// DefaultRandomizer returns a fast CSPRNG-backed randomizer.
func DefaultRandomizer() Randomizer {
	return frand.New()
}

// A Bag is the bag o'tiles!
type Bag struct {
	tiles      []rune
	initial    []rune
	randomizer Randomizer
}

// NewBag returns a full, unshuffled bag for ld.
func NewBag(ld *LetterDistribution, rng Randomizer) *Bag {
	tiles := make([]rune, 0, ld.NumTiles())
	for _, r := range ld.order {
		for i := 0; i < ld.Frequency(r); i++ {
			tiles = append(tiles, r)
		}
	}
	return &Bag{
		tiles:      tiles,
		initial:    append([]rune(nil), tiles...),
		randomizer: rng,
	}
}

// MakeBag returns a full, shuffled bag.
func (ld *LetterDistribution) MakeBag(rng Randomizer) *Bag {
	b := NewBag(ld, rng)
	b.Shuffle()
	return b
}

// Shuffle shuffles the bag (Fisher-Yates).
func (b *Bag) Shuffle() {
	for i := len(b.tiles) - 1; i > 0; i-- {
		j := b.randomizer.Intn(i + 1)
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	}
}

// Draw draws n tiles from the bag.
func (b *Bag) Draw(n int) ([]rune, error) {
	if n > len(b.tiles) {
		return nil, fmt.Errorf("tried to draw %v tiles, tile bag has %v",
			n, len(b.tiles))
	}
	drawn := make([]rune, n)
	copy(drawn, b.tiles[:n])
	b.tiles = b.tiles[n:]
	return drawn, nil
}

// DrawAtMost draws at most n tiles from the bag. It can draw fewer if there
// are fewer tiles than n, and even draw no tiles at all :o
func (b *Bag) DrawAtMost(n int) []rune {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn, _ := b.Draw(n)
	return drawn
}

// Refill puts every tile back and reshuffles.
func (b *Bag) Refill() {
	b.tiles = append(b.tiles[:0], b.initial...)
	b.Shuffle()
}

func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}
