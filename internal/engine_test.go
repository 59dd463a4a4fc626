package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/inclint/internal/estree"
	tt "github.com/gnolang/inclint/internal/types"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func writeFile(t testing.TB, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"prefer-includes"}, engine.Rules())
	assert.Equal(t, tt.SeverityError, engine.findRule("prefer-includes").Severity())
	assert.True(t, engine.findRule("prefer-includes").Fixable())
}

func TestNewEngineWithConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   map[string]tt.ConfigRule
		expected map[string]tt.Severity
	}{
		{
			name: "enable regex rule",
			config: map[string]tt.ConfigRule{
				"prefer-includes-regex": {Severity: tt.SeverityWarning},
			},
			expected: map[string]tt.Severity{
				"prefer-includes":       tt.SeverityError,
				"prefer-includes-regex": tt.SeverityWarning,
			},
		},
		{
			name: "downgrade default rule",
			config: map[string]tt.ConfigRule{
				"prefer-includes": {Severity: tt.SeverityInfo},
			},
			expected: map[string]tt.Severity{
				"prefer-includes": tt.SeverityInfo,
			},
		},
		{
			name: "turn off default rule",
			config: map[string]tt.ConfigRule{
				"prefer-includes":       {Severity: tt.SeverityOff},
				"prefer-includes-regex": {Severity: tt.SeverityOff},
			},
			expected: map[string]tt.Severity{},
		},
		{
			name: "unknown rule ignored",
			config: map[string]tt.ConfigRule{
				"no-such-rule": {Severity: tt.SeverityError},
			},
			expected: map[string]tt.Severity{
				"prefer-includes": tt.SeverityError,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(tc.config)
			require.NoError(t, err)

			actual := make(map[string]tt.Severity)
			for name, rule := range engine.rules {
				actual[name] = rule.Severity()
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnoreRule("prefer-includes")

	assert.True(t, engine.ignoredRules["prefer-includes"])
	assert.Empty(t, engine.Rules())

	issues, err := engine.RunSource([]byte("a.indexOf(b) !== -1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()
	engine := &Engine{}
	engine.IgnorePath("vendor")
	engine.IgnorePath("*.min.js")

	assert.True(t, engine.isIgnoredPath("vendor/lib.js"))
	assert.True(t, engine.isIgnoredPath("./vendor/deep/lib.js"))
	assert.True(t, engine.isIgnoredPath("dist/app.min.js"))
	assert.False(t, engine.isIgnoredPath("src/app.js"))
	assert.False(t, engine.isIgnoredPath("vendored.js"))
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "engine_run")

	path := writeFile(t, tempDir, "app.js", `const has = (list, x) => list.indexOf(x) !== -1;
if (/abc/.test(name)) {
	console.log(name.indexOf("a") >= 0);
}
`)

	engine, err := NewEngine(map[string]tt.ConfigRule{
		"prefer-includes-regex": {Severity: tt.SeverityWarning},
	})
	require.NoError(t, err)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 3)

	assert.Equal(t, "prefer-includes", issues[0].Rule)
	assert.Equal(t, path, issues[0].Filename)
	assert.Equal(t, 1, issues[0].Start.Line)
	assert.Equal(t, "list.includes(x)", issues[0].Suggestion)

	assert.Equal(t, "prefer-includes-regex", issues[1].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[1].Severity)
	assert.Equal(t, "name.includes('abc')", issues[1].Suggestion)

	assert.Equal(t, "prefer-includes", issues[2].Rule)
	assert.Equal(t, 3, issues[2].Start.Line)
	assert.Equal(t, `name.includes("a")`, issues[2].Suggestion)
}

func TestEngine_RunNolint(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	src := `const a = s.indexOf(c) !== -1; // nolint:prefer-includes
const b = s.indexOf(c) !== -1;
// nolint
const d = s.indexOf(c) !== -1;
`
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Start.Line)
}

func TestEngine_RunErrors(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	_, err = engine.Run(filepath.Join(createTempDir(t, "missing"), "nope.js"))
	assert.Error(t, err)

	_, err = engine.RunSource([]byte("if (a.indexOf(b) !== {"))
	require.Error(t, err)
	assert.ErrorIs(t, err, estree.ErrSyntax)
}

func TestEngine_RunIgnoredPath(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "engine_ignored")
	path := writeFile(t, tempDir, "bundle.min.js", "a.indexOf(b) !== -1;")

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnorePath("*.min.js")

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestReadSourceCode(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "source_code")
	path := writeFile(t, tempDir, "a.js", "line1\nline2")

	sc, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"line1", "line2"}, sc.Lines)

	_, err = ReadSourceCode(filepath.Join(tempDir, "missing.js"))
	assert.Error(t, err)
}
