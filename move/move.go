package move

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Candidate is a dictionary word reachable from a rack, with its estimated
// score.
type Candidate struct {
	Word  string
	Score int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%d)", c.Word, c.Score)
}

// Length is the word length in letters.
func (c Candidate) Length() int {
	return utf8.RuneCountInString(c.Word)
}

// ScoredMove is a chosen candidate plus where it goes on the row.
type ScoredMove struct {
	Candidate
	// Offset is the 0-based row slot the first letter goes on.
	Offset int
	// HighLetterIdx is the position in Word of its highest scoring letter.
	HighLetterIdx int
}

func (m *ScoredMove) String() string {
	return fmt.Sprintf("%s at %d, scoring %d", m.Word, m.Offset, m.Score)
}

// Less ranks a ahead of b: higher score first, then the longer word, then
// alphabetical order so the ranking is total.
func Less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if la, lb := a.Length(), b.Length(); la != lb {
		return la > lb
	}
	return a.Word < b.Word
}

// SortCandidates sorts cands in place, best first.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return Less(cands[i], cands[j])
	})
}

// TopN returns the n best candidates, best first, without modifying cands.
func TopN(cands []Candidate, n int) []Candidate {
	sorted := append([]Candidate(nil), cands...)
	SortCandidates(sorted)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Words lists the words of cands, in order.
func Words(cands []Candidate) []string {
	return lo.Map(cands, func(c Candidate, _ int) string {
		return c.Word
	})
}

// Table renders cands as a numbered table.
func Table(cands []Candidate) string {
	var sb strings.Builder
	sb.WriteString("     Word      Score\n")
	for i, c := range cands {
		fmt.Fprintf(&sb, "%3d: %-10s%-6d\n", i+1, c.Word, c.Score)
	}
	return sb.String()
}
