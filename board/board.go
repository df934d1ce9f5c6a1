// Package board models the single playable row of an opening move.
package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// RowLength is the number of slots on the row.
	RowLength = 13
	// Center is the slot every opening word must cover.
	Center = 6
)

var (
	ErrOutOfBounds = errors.New("word does not fit on the row at that offset")
	ErrOccupied    = errors.New("slot already holds a letter")
)

// Row is the playable row: RowLength optional letters and the score of the
// move committed to it. A zero rune marks an empty slot.
type Row struct {
	slots [RowLength]rune
	score int
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{}
}

// Commit writes word into consecutive slots starting at offset. Nothing is
// written if the word would run off either end or cover an occupied slot.
func (r *Row) Commit(word string, offset int) error {
	n := utf8.RuneCountInString(word)
	if offset < 0 || offset+n > RowLength {
		return fmt.Errorf("%w: %q at %d needs slots %d-%d of %d",
			ErrOutOfBounds, word, offset, offset, offset+n-1, RowLength)
	}
	for i := offset; i < offset+n; i++ {
		if r.slots[i] != 0 {
			return fmt.Errorf("%w: slot %d has %c", ErrOccupied, i, r.slots[i])
		}
	}
	i := offset
	for _, l := range word {
		r.slots[i] = l
		i++
	}
	return nil
}

// Letter returns the letter at slot i and whether the slot is occupied.
func (r *Row) Letter(i int) (rune, bool) {
	l := r.slots[i]
	return l, l != 0
}

// IsEmpty reports whether no letter has been committed.
func (r *Row) IsEmpty() bool {
	for _, l := range r.slots {
		if l != 0 {
			return false
		}
	}
	return true
}

// CoversCenter reports whether the center slot is occupied.
func (r *Row) CoversCenter() bool {
	return r.slots[Center] != 0
}

func (r *Row) SetScore(score int) {
	r.score = score
}

func (r *Row) Score() int {
	return r.score
}

// Clear empties every slot and resets the score.
func (r *Row) Clear() {
	*r = Row{}
}

// String renders the row as | A || _ |... followed by the score.
func (r *Row) String() string {
	var sb strings.Builder
	for _, l := range r.slots {
		if l == 0 {
			sb.WriteString("| _ |")
		} else {
			fmt.Fprintf(&sb, "| %c |", l)
		}
	}
	fmt.Fprintf(&sb, "\nScore: %d", r.score)
	return sb.String()
}
