package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/inclint/internal/estree"
	tt "github.com/gnolang/inclint/internal/types"
)

func TestDetectRegexIncludes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		code       string
		suggestion string
	}{
		{"plain word", "/foo/.test(str);", "str.includes('foo')"},
		{"spaces", "/hello world/.test(msg);", "msg.includes('hello world')"},
		{"member target", "/abc/.test(req.url);", "req.url.includes('abc')"},
		{"quote escaped", "/it's/.test(s);", `s.includes('it\'s')`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file := parseJS(t, tc.code)

			issues, err := DetectRegexIncludes("test.js", file, tt.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, issues, 1)
			assert.Equal(t, "prefer-includes-regex", issues[0].Rule)
			assert.Equal(t, tc.suggestion, issues[0].Suggestion)
			assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
		})
	}
}

func TestDetectRegexIncludesNoMatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code string
	}{
		{"anchored", "/^foo/.test(s);"},
		{"wildcard", "/f.o/.test(s);"},
		{"escape", `/a\d/.test(s);`},
		{"alternation", "/a|b/.test(s);"},
		{"character class", "/[ab]/.test(s);"},
		{"flags", "/foo/i.test(s);"},
		{"no arguments", "/foo/.test();"},
		{"exec", "/foo/.exec(s);"},
		{"variable receiver", "re.test(s);"},
		{"string receiver", "'foo'.test(s);"},
		{"computed", "/foo/['test'](s);"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file := parseJS(t, tc.code)

			issues, err := DetectRegexIncludes("test.js", file, tt.SeverityWarning)
			require.NoError(t, err)
			assert.Empty(t, issues)
		})
	}
}

func TestIsPlainStringPattern(t *testing.T) {
	t.Parallel()
	assert.True(t, isPlainStringPattern(&estree.Regex{Pattern: "abc"}))
	assert.True(t, isPlainStringPattern(&estree.Regex{Pattern: "a-b c"}))
	assert.False(t, isPlainStringPattern(&estree.Regex{Pattern: ""}))
	assert.False(t, isPlainStringPattern(&estree.Regex{Pattern: "abc", Flags: "g"}))
	for _, meta := range regexMetaChars {
		assert.False(t, isPlainStringPattern(&estree.Regex{Pattern: "a" + string(meta)}), string(meta))
	}
}
