package tilemapping

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/crossrow/opener/cache"
	"github.com/crossrow/opener/config"
)

//go:embed data/english.yaml
var englishYAML []byte

// AltBlankToken is accepted on input as a wildcard in addition to the
// distribution's own blank symbol.
const AltBlankToken = '?'

type letterEntry struct {
	Letter    string `yaml:"letter"`
	Points    int    `yaml:"points"`
	Frequency int    `yaml:"frequency"`
}

type distributionFile struct {
	Name              string        `yaml:"name"`
	Blank             string        `yaml:"blank"`
	SubstitutionOrder string        `yaml:"substitution-order"`
	Letters           []letterEntry `yaml:"letters"`
}

// LetterDistribution holds the two static letter tables: point values used to
// score words, and frequencies that make up the bag. It is read-only after
// construction.
type LetterDistribution struct {
	Name         string
	blank        rune
	substitution []rune
	// order is the letter order of the source file; the bag is built in
	// this order so a seeded shuffle is reproducible.
	order       []rune
	points      map[rune]int
	frequencies map[rune]int
	numTiles    int
}

// ScanLetterDistribution reads a YAML letter table.
func ScanLetterDistribution(data io.Reader) (*LetterDistribution, error) {
	var df distributionFile
	if err := yaml.NewDecoder(data).Decode(&df); err != nil {
		return nil, fmt.Errorf("decoding letter distribution: %w", err)
	}
	return newLetterDistribution(df)
}

func newLetterDistribution(df distributionFile) (*LetterDistribution, error) {
	if utf8.RuneCountInString(df.Blank) != 1 {
		return nil, fmt.Errorf("blank must be a single symbol, got %q", df.Blank)
	}
	blank, _ := utf8.DecodeRuneInString(df.Blank)
	ld := &LetterDistribution{
		Name:        df.Name,
		blank:       blank,
		points:      make(map[rune]int, len(df.Letters)),
		frequencies: make(map[rune]int, len(df.Letters)),
	}
	for _, e := range df.Letters {
		if utf8.RuneCountInString(e.Letter) != 1 {
			return nil, fmt.Errorf("letter must be a single symbol, got %q", e.Letter)
		}
		if e.Points < 0 || e.Frequency < 0 {
			return nil, fmt.Errorf("letter %s has a negative weight", e.Letter)
		}
		r, _ := utf8.DecodeRuneInString(e.Letter)
		if _, ok := ld.points[r]; ok {
			return nil, fmt.Errorf("letter %s listed twice", e.Letter)
		}
		ld.order = append(ld.order, r)
		ld.points[r] = e.Points
		ld.frequencies[r] = e.Frequency
		ld.numTiles += e.Frequency
	}
	if _, ok := ld.points[blank]; !ok {
		return nil, errors.New("blank is missing from the letter list")
	}
	for _, r := range df.SubstitutionOrder {
		if _, ok := ld.points[r]; !ok || r == blank {
			return nil, fmt.Errorf("substitution letter %c is not a letter of this distribution", r)
		}
		ld.substitution = append(ld.substitution, r)
	}
	if len(ld.substitution) == 0 {
		return nil, errors.New("substitution order is empty")
	}
	return ld, nil
}

// EnglishLetterDistribution returns the built-in English tables.
func EnglishLetterDistribution() *LetterDistribution {
	ld, err := ScanLetterDistribution(bytes.NewReader(englishYAML))
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	return ld
}

const CacheKeyPrefix = "letterdistribution:"

// CacheLoadFunc loads the letter distribution file named by key into the
// global cache.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	path := strings.TrimPrefix(key, CacheKeyPrefix)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ld, err := ScanLetterDistribution(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ld, nil
}

// GetDistribution returns the distribution named by the config, or the
// built-in English one if no path is configured.
func GetDistribution(cfg *config.Config) (*LetterDistribution, error) {
	path := cfg.GetString(config.ConfigLetterDistributionPath)
	if path == "" {
		return EnglishLetterDistribution(), nil
	}
	return cache.Get[*LetterDistribution](cfg, CacheKeyPrefix+path, CacheLoadFunc)
}

// Score returns the point value of a letter. Unknown letters score 0.
func (ld *LetterDistribution) Score(r rune) int {
	return ld.points[r]
}

// Frequency returns the number of tiles of this letter in a full bag.
func (ld *LetterDistribution) Frequency(r rune) int {
	return ld.frequencies[r]
}

// Blank returns the wildcard symbol.
func (ld *LetterDistribution) Blank() rune {
	return ld.blank
}

// IsBlank reports whether r stands for a wildcard tile.
func (ld *LetterDistribution) IsBlank(r rune) bool {
	return r == ld.blank || r == AltBlankToken
}

// HasLetter reports whether r is a letter (or the blank) of this distribution.
func (ld *LetterDistribution) HasLetter(r rune) bool {
	_, ok := ld.points[r]
	return ok
}

// SubstitutionOrder returns the letters a wildcard may stand for, most
// frequent first. The returned slice must not be modified.
func (ld *LetterDistribution) SubstitutionOrder() []rune {
	return ld.substitution
}

// Letters returns all symbols in table order, the blank included.
func (ld *LetterDistribution) Letters() []rune {
	return append([]rune(nil), ld.order...)
}

// NumTiles is the size of a full bag.
func (ld *LetterDistribution) NumTiles() int {
	return ld.numTiles
}

// WordScore sums the point values of every letter in word.
func (ld *LetterDistribution) WordScore(word string) int {
	score := 0
	for _, r := range word {
		score += ld.Score(r)
	}
	return score
}
