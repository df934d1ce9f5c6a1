// Package testhelpers has fixtures shared by the package tests.
package testhelpers

import (
	"testing"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/tilemapping"
)

// Config returns a fresh default config with the given key/value overrides.
func Config(kv ...any) *config.Config {
	cfg := config.DefaultConfig()
	for i := 0; i+1 < len(kv); i += 2 {
		cfg.Set(kv[i].(string), kv[i+1])
	}
	return cfg
}

// NoThresholdConfig keeps every candidate regardless of score.
func NoThresholdConfig() *config.Config {
	return Config(config.ConfigMinScoreFraction, 0.0)
}

func English() *tilemapping.LetterDistribution {
	return tilemapping.EnglishLetterDistribution()
}

// Rack builds an English rack or fails the test.
func Rack(tb testing.TB, s string) tilemapping.Rack {
	tb.Helper()
	r, err := tilemapping.RackFromString(s, English())
	if err != nil {
		tb.Fatal(err)
	}
	return r
}
