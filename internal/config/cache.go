package config

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrAlreadyResolved indicates an attempt to reconfigure the process-wide
// accessor after settings were resolved. There is no reload: a process that
// needs fresh configuration must restart.
var ErrAlreadyResolved = errors.New("settings already resolved for this process")

// Cache memoizes at most one resolved Settings instance. The first Get
// triggers resolution; every later call, concurrent callers included,
// receives the identical result without re-reading any source. A failed
// resolution is cached the same way and returns the identical error.
type Cache struct {
	resolver *Resolver

	once     sync.Once
	filled   atomic.Bool
	settings *Settings
	err      error
}

// NewCache wraps a resolver with a single-resolution guard.
func NewCache(r *Resolver) *Cache {
	return &Cache{resolver: r}
}

// Get returns the cached settings, resolving them on the first call.
func (c *Cache) Get() (*Settings, error) {
	c.once.Do(func() {
		c.settings, c.err = c.resolver.Resolve()
		c.filled.Store(true)
	})
	return c.settings, c.err
}

var (
	processMu    sync.Mutex
	processCache = NewCache(NewResolver())
)

// Get returns the process-wide settings, resolving them on first access.
// This is the accessor collaborators use; they read fields from the result
// but never construct or mutate settings directly.
func Get() (*Settings, error) {
	processMu.Lock()
	cache := processCache
	processMu.Unlock()
	return cache.Get()
}

// Configure replaces the resolver behind the process-wide accessor, for
// callers (the CLI) that need to feed explicit overrides in before first
// use. It fails once settings have been resolved.
func Configure(opts ...Option) error {
	processMu.Lock()
	defer processMu.Unlock()
	if processCache.filled.Load() {
		return ErrAlreadyResolved
	}
	processCache = NewCache(NewResolver(opts...))
	return nil
}
