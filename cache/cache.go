// Package cache holds large, read-only objects (lexica, letter tables) that
// should be loaded once per process no matter how many games or shell
// sessions ask for them.
package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/crossrow/opener/config"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object stored under key.
type LoadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache = newCache()

func newCache() *cache {
	return &cache{objects: make(map[string]any)}
}

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the cached object for key, calling loadFunc on a miss.
// Failed loads are not cached.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// Get is Load with the result asserted to T.
func Get[T any](cfg *config.Config, key string, loadFunc LoadFunc) (T, error) {
	var zero T
	obj, err := Load(cfg, key, loadFunc)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("cached object %s has type %T", key, obj)
	}
	return t, nil
}

// Evict drops key from the cache. It reports whether anything was removed.
func Evict(key string) bool {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	_, ok := GlobalObjectCache.objects[key]
	delete(GlobalObjectCache.objects, key)
	return ok
}
