package cache

import (
	"strings"
	"sync"

	"addon-indexer/internal/parser"
	"addon-indexer/internal/textutil"
)

type entry struct {
	hash   string
	result *parser.ParseResult
}

// ResultCache keeps the last parse result of each catalog file, keyed by
// path and invalidated by a hash of the extracted content.
type ResultCache struct {
	mu     sync.RWMutex
	byPath map[string]entry
	parser parser.Parser
}

// Delta describes how a file's object paths changed since it was last cached.
type Delta struct {
	Path    string
	Changed bool
	Added   []string
	Removed []string
	Result  *parser.ParseResult
}

// NewResultCache creates an empty cache refreshing files through p.
func NewResultCache(p parser.Parser) *ResultCache {
	return &ResultCache{byPath: make(map[string]entry), parser: p}
}

// Get returns the cached result for path if its content hash still matches.
func (c *ResultCache) Get(path, hash string) (*parser.ParseResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.byPath[path]
	if !ok || e.hash != hash {
		return nil, false
	}
	return e.result, true
}

// Set stores the result for path.
func (c *ResultCache) Set(path, hash string, res *parser.ParseResult) {
	c.mu.Lock()
	c.byPath[path] = entry{hash: hash, result: res}
	c.mu.Unlock()
}

// Forget drops path and returns what was cached for it.
func (c *ResultCache) Forget(path string) (*parser.ParseResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byPath[path]
	delete(c.byPath, path)
	return e.result, ok
}

func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}

// Refresh re-parses path and reports the object paths added and removed
// since the previous parse. An unchanged result keeps the cached one.
func (c *ResultCache) Refresh(path string) (Delta, error) {
	res, err := c.parser.Parse(path)
	if err != nil {
		return Delta{}, err
	}

	hash := fingerprint(res)
	if cached, ok := c.Get(path, hash); ok {
		return Delta{Path: path, Result: cached}, nil
	}

	c.mu.RLock()
	prev := c.byPath[path].result
	c.mu.RUnlock()

	c.Set(path, hash, res)

	d := Delta{Path: path, Changed: true, Result: res}
	var before []string
	if prev != nil {
		before = prev.ObjectPaths
	}
	d.Added, d.Removed = diff(before, res.ObjectPaths)
	return d, nil
}

func fingerprint(res *parser.ParseResult) string {
	return textutil.Hash(strings.Join(res.ObjectPaths, "\n") + "\x00" + strings.Join(res.UnrecognizedLines, "\n"))
}

// Remove forgets path and reports all its previous object paths as removed.
func (c *ResultCache) Remove(path string) Delta {
	prev, ok := c.Forget(path)
	if !ok || prev == nil {
		return Delta{Path: path}
	}
	_, removed := diff(prev.ObjectPaths, nil)
	return Delta{Path: path, Changed: len(removed) > 0, Removed: removed}
}

// diff returns the distinct entries only in after (added) and only in before (removed).
func diff(before, after []string) (added, removed []string) {
	inBefore := make(map[string]bool, len(before))
	for _, p := range before {
		inBefore[p] = true
	}
	inAfter := make(map[string]bool, len(after))
	for _, p := range after {
		if !inAfter[p] && !inBefore[p] {
			added = append(added, p)
		}
		inAfter[p] = true
	}
	seen := make(map[string]bool)
	for _, p := range before {
		if !inAfter[p] && !seen[p] {
			removed = append(removed, p)
		}
		seen[p] = true
	}
	return added, removed
}
