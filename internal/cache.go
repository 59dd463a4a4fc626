package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	tt "github.com/gnolang/inclint/internal/types"
)

type CacheEntry struct {
	Hash      string
	Issues    []tt.Issue
	CreatedAt time.Time
}

// Cache remembers the issues reported for a file until its content changes.
type Cache struct {
	entries map[string]CacheEntry
	mutex   sync.Mutex
	// maxAge of zero keeps entries until the content changes
	maxAge time.Duration
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]CacheEntry),
	}
}

func (c *Cache) Set(filename string, content []byte, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:      contentHash(content),
		Issues:    issues,
		CreatedAt: time.Now(),
	}
}

// Get returns the cached issues for filename when they were computed for
// the same content.
func (c *Cache) Get(filename string, content []byte) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(entry, content) {
		delete(c.entries, filename)
		return nil, false
	}

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(entry CacheEntry, content []byte) bool {
	// too old
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	return entry.Hash != contentHash(content)
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) Invalidate(filename string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, filename)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
