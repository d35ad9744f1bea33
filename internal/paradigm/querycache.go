package paradigm

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// QueryCache memoizes compiled tree-sitter queries keyed by (language,
// pattern text). It is the only shared mutable state touched during
// parallel file parsing and must be safe for concurrent read-mostly
// access.
type QueryCache struct {
	mu    sync.RWMutex
	byKey map[queryCacheKey]*sitter.Query
}

type queryCacheKey struct {
	lang    string
	pattern string
}

// NewQueryCache returns an empty, ready-to-use cache.
func NewQueryCache() *QueryCache {
	return &QueryCache{byKey: make(map[queryCacheKey]*sitter.Query)}
}

// Get compiles (or returns the memoized compilation of) pattern against
// lang. langName is purely a cache-key discriminator; grammar is the actual
// *sitter.Language the pattern is compiled against.
func (c *QueryCache) Get(langName string, grammar *sitter.Language, pattern string) (*sitter.Query, error) {
	key := queryCacheKey{lang: langName, pattern: pattern}

	c.mu.RLock()
	q, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		return q, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := c.byKey[key]; ok {
		return q, nil
	}
	q, err := sitter.NewQuery([]byte(pattern), grammar)
	if err != nil {
		return nil, fmt.Errorf("paradigm: compile query for %s: %w", langName, err)
	}
	c.byKey[key] = q
	return q, nil
}
