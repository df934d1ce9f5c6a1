package equity

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/crossrow/opener/board"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/tilemapping"
)

var (
	// ErrNoMoves means no candidate could be played this turn.
	ErrNoMoves     = errors.New("no move found")
	ErrWordTooLong = errors.New("word is longer than the row")
)

// premiumSlots are the double letter slots the offset table aims the
// highest scoring letter at, nearest first.
var premiumSlots = [...]int{3, 10}

// HighestScoringIndex returns the position of the letter with the highest
// point value. Ties go to the first occurrence. It returns -1 for an empty
// word.
func HighestScoringIndex(word []rune, ld *tilemapping.LetterDistribution) int {
	best, idx := -1, -1
	for i, r := range word {
		if s := ld.Score(r); s > best {
			best, idx = s, i
		}
	}
	return idx
}

// StartingOffset returns the slot the first letter of word goes on so that
// the word covers the center and, where the row allows, its highest scoring
// letter sits on a premium slot.
func StartingOffset(word string, ld *tilemapping.LetterDistribution) (int, error) {
	rs := []rune(word)
	return offsetFor(len(rs), HighestScoringIndex(rs, ld))
}

func offsetFor(length, idx int) (int, error) {
	switch {
	case length > board.RowLength:
		return 0, fmt.Errorf("%w: %d letters", ErrWordTooLong, length)
	case length < 5:
		return 6, nil
	case length == 5:
		if idx == 0 {
			return 3, nil
		}
		return 6, nil
	case length == 6:
		switch idx {
		case 0:
			return 3, nil
		case 1:
			return 2, nil
		case 5:
			return 5, nil
		}
		return 4, nil
	case length == 7:
		switch idx {
		case 0:
			return 3, nil
		case 1:
			return 2, nil
		case 2:
			return 1, nil
		case 5:
			return 5, nil
		case 4:
			return 4, nil
		}
		return 3, nil
	}
	// Long words (only reachable with a custom rack size): aim at a premium
	// slot if the word still fits and covers the center, else center it.
	lo, hi := 0, min(board.Center, board.RowLength-length)
	for _, slot := range premiumSlots {
		if off := slot - idx; off >= lo && off <= hi {
			return off, nil
		}
	}
	return (board.RowLength - length) / 2, nil
}

// SelectBest ranks cands (see move.Less) and places the best one. Words that
// cannot be placed are skipped. It returns ErrNoMoves if nothing is left.
func SelectBest(cands []move.Candidate, ld *tilemapping.LetterDistribution) (*move.ScoredMove, error) {
	if len(cands) == 0 {
		return nil, ErrNoMoves
	}
	ranked := append([]move.Candidate(nil), cands...)
	move.SortCandidates(ranked)
	for _, c := range ranked {
		rs := []rune(c.Word)
		idx := HighestScoringIndex(rs, ld)
		off, err := offsetFor(len(rs), idx)
		if err != nil {
			log.Debug().Err(err).Str("word", c.Word).Msg("skipping-candidate")
			continue
		}
		return &move.ScoredMove{Candidate: c, Offset: off, HighLetterIdx: idx}, nil
	}
	return nil, ErrNoMoves
}
