package tilemapping

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RackSize is the number of tiles a full rack holds.
	RackSize = 7
	// MaxBlanks is the most wildcards a rack may hold.
	MaxBlanks = 2
)

var (
	ErrRackTooLong   = errors.New("rack has too many tiles")
	ErrTooManyBlanks = errors.New("rack has too many blanks")
	ErrInvalidLetter = errors.New("letter is not in the letter distribution")
)

// Rack is an immutable, ordered hand of tiles. Wildcards are stored as the
// distribution's blank symbol. The zero value is an empty rack.
type Rack struct {
	tiles  []rune
	blank  rune
	blanks int
}

// NewRack validates tiles against ld and returns a rack holding them. '?'
// is accepted as a wildcard.
func NewRack(tiles []rune, ld *LetterDistribution) (Rack, error) {
	if len(tiles) > RackSize {
		return Rack{}, fmt.Errorf("%w: %d > %d", ErrRackTooLong, len(tiles), RackSize)
	}
	r := Rack{tiles: make([]rune, 0, len(tiles)), blank: ld.Blank()}
	for _, t := range tiles {
		if ld.IsBlank(t) {
			r.blanks++
			r.tiles = append(r.tiles, ld.Blank())
			continue
		}
		if !ld.HasLetter(t) {
			return Rack{}, fmt.Errorf("%w: %q", ErrInvalidLetter, t)
		}
		r.tiles = append(r.tiles, t)
	}
	if r.blanks > MaxBlanks {
		return Rack{}, fmt.Errorf("%w: %d > %d", ErrTooManyBlanks, r.blanks, MaxBlanks)
	}
	return r, nil
}

// RackFromString creates a rack from user input such as "cats?xx". Letters
// are uppercased.
func RackFromString(s string, ld *LetterDistribution) (Rack, error) {
	return NewRack([]rune(strings.ToUpper(strings.TrimSpace(s))), ld)
}

// Without returns a new rack with the tile at index i removed. The receiver
// is left untouched.
func (r Rack) Without(i int) Rack {
	n := Rack{
		tiles:  make([]rune, 0, len(r.tiles)-1),
		blank:  r.blank,
		blanks: r.blanks,
	}
	n.tiles = append(n.tiles, r.tiles[:i]...)
	n.tiles = append(n.tiles, r.tiles[i+1:]...)
	if r.IsBlank(i) {
		n.blanks--
	}
	return n
}

// IsBlank reports whether the tile at index i is a wildcard.
func (r Rack) IsBlank(i int) bool {
	return r.blanks > 0 && r.tiles[i] == r.blank
}

// Tile returns the tile at index i.
func (r Rack) Tile(i int) rune {
	return r.tiles[i]
}

// Tiles returns a copy of the rack's tiles.
func (r Rack) Tiles() []rune {
	return append([]rune(nil), r.tiles...)
}

// NumTiles is the number of tiles on the rack.
func (r Rack) NumTiles() int {
	return len(r.tiles)
}

// NumBlanks is the number of wildcards on the rack.
func (r Rack) NumBlanks() int {
	return r.blanks
}

// IsEmpty reports whether the rack has no tiles.
func (r Rack) IsEmpty() bool {
	return len(r.tiles) == 0
}

func (r Rack) String() string {
	return string(r.tiles)
}
