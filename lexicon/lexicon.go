// Package lexicon is the dictionary index: a prefix tree of every word in a
// word list, built once and only read afterwards.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type node struct {
	children map[rune]*node
	terminal bool
}

func (n *node) child(r rune) *node {
	return n.children[r]
}

// Lexicon answers exact-word membership queries. It is safe for concurrent
// readers.
type Lexicon struct {
	name        string
	root        *node
	numWords    int
	numNodes    int
	fingerprint uint64
}

func newLexicon(name string) *Lexicon {
	return &Lexicon{name: name, root: &node{}, numNodes: 1}
}

// insert walks or creates one node per rune and marks the last one as a
// complete word. It reports whether the word was new.
func (l *Lexicon) insert(word string) bool {
	n := l.root
	for _, r := range word {
		next := n.child(r)
		if next == nil {
			if n.children == nil {
				n.children = make(map[rune]*node)
			}
			next = &node{}
			n.children[r] = next
			l.numNodes++
		}
		n = next
	}
	if n.terminal {
		return false
	}
	n.terminal = true
	l.numWords++
	return true
}

// Build reads one word per line. Lines are trimmed and uppercased; blank
// lines are skipped. It fails only if reading fails.
func Build(name string, r io.Reader) (*Lexicon, error) {
	l := newLexicon(name)
	h := xxhash.New()
	upper := cases.Upper(language.Und)
	sc := bufio.NewScanner(io.TeeReader(r, h))
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		l.insert(upper.String(word))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	l.fingerprint = h.Sum64()
	return l, nil
}

// Load builds a lexicon from the word list at path. The lexicon is named
// after the file.
func Load(path string) (*Lexicon, error) {
	st := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l, err := Build(name, f)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	log.Info().Str("lexicon", l.name).Int("words", l.numWords).Int("nodes", l.numNodes).
		Str("fingerprint", l.Fingerprint()).Dur("elapsed", time.Since(st)).
		Msg("loaded lexicon")
	return l, nil
}

// FromWords builds a lexicon from an in-memory list, normalized as in Build.
func FromWords(words ...string) *Lexicon {
	l, err := Build("inline", strings.NewReader(strings.Join(words, "\n")))
	if err != nil {
		// strings.Reader never fails.
		panic(err)
	}
	return l
}

// HasWord reports whether word was inserted as a complete word. The query
// is uppercased like the word list. Prefixes of longer words and the empty
// string are not words.
func (l *Lexicon) HasWord(word string) bool {
	// a Caser is stateful, so each query gets its own
	return l.HasRunes([]rune(cases.Upper(language.Und).String(word)))
}

// HasRunes is HasWord for an already uppercased rune path.
func (l *Lexicon) HasRunes(word []rune) bool {
	if len(word) == 0 {
		return false
	}
	n := l.root
	for _, r := range word {
		n = n.child(r)
		if n == nil {
			return false
		}
	}
	return n.terminal
}

func (l *Lexicon) Name() string {
	return l.name
}

// NumWords is the number of distinct words.
func (l *Lexicon) NumWords() int {
	return l.numWords
}

// Fingerprint is a hex xxhash of the raw source, handy for telling two
// loaded word lists apart in logs.
func (l *Lexicon) Fingerprint() string {
	return fmt.Sprintf("%016x", l.fingerprint)
}
