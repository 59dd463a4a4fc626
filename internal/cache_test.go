package internal

import (
	"go/token"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tt "github.com/gnolang/inclint/internal/types"
)

func TestCache(t *testing.T) {
	cache := NewCache()
	content := []byte("const ok = a.indexOf(b) !== -1;\n")

	issues := []tt.Issue{
		{
			Rule:     "prefer-includes",
			Filename: "test.js",
			Message:  "test issue",
			Start:    token.Position{Line: 1, Column: 12, Filename: "test.js"},
			End:      token.Position{Line: 1, Column: 32, Filename: "test.js"},
		},
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		cache.Set("test.js", content, issues)

		loadedIssues, found := cache.Get("test.js", content)
		assert.True(t, found)
		assert.Equal(t, issues, loadedIssues)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.js", content)
		assert.False(t, found)
	})

	t.Run("ContentModified", func(t *testing.T) {
		cache.Set("modified.js", content, issues)

		_, found := cache.Get("modified.js", []byte("const ok = a.includes(b);\n"))
		assert.False(t, found)

		// the stale entry is dropped
		_, found = cache.Get("modified.js", content)
		assert.False(t, found)
	})

	t.Run("Invalidate", func(t *testing.T) {
		cache.Set("a.js", content, nil)
		cache.Set("b.js", content, nil)

		cache.Invalidate("a.js")
		_, found := cache.Get("a.js", content)
		assert.False(t, found)
		_, found = cache.Get("b.js", content)
		assert.True(t, found)

		cache.InvalidateAll()
		_, found = cache.Get("b.js", content)
		assert.False(t, found)
	})

	t.Run("MaxAge", func(t *testing.T) {
		aged := NewCache()
		aged.SetMaxAge(time.Millisecond)
		aged.Set("old.js", content, issues)

		time.Sleep(5 * time.Millisecond)
		_, found := aged.Get("old.js", content)
		assert.False(t, found)
	})
}
