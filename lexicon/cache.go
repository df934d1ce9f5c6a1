package lexicon

import (
	"strings"

	"github.com/crossrow/opener/cache"
	"github.com/crossrow/opener/config"
)

const (
	CacheKeyPrefix = "lexicon:"
)

// CacheLoadFunc is the function that loads a lexicon into the global cache.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	return Load(strings.TrimPrefix(key, CacheKeyPrefix))
}

// Get loads the lexicon at path, or returns the one already loaded.
func Get(cfg *config.Config, path string) (*Lexicon, error) {
	return cache.Get[*Lexicon](cfg, CacheKeyPrefix+path, CacheLoadFunc)
}

// GetDefault loads the lexicon named by config.ConfigLexiconPath.
func GetDefault(cfg *config.Config) (*Lexicon, error) {
	return Get(cfg, cfg.GetString(config.ConfigLexiconPath))
}
