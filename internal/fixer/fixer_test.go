package fixer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/inclint/internal/estree"
	"github.com/gnolang/inclint/internal/lints"
	tt "github.com/gnolang/inclint/internal/types"
)

func detect(t *testing.T, filename, code string) []tt.Issue {
	t.Helper()
	file, err := estree.Parse(context.Background(), filename, []byte(code))
	require.NoError(t, err)
	issues, err := lints.DetectPreferIncludes(filename, file, tt.SeverityError)
	require.NoError(t, err)
	return issues
}

func TestAutoFixer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Fix - Simple case",
			input: `function has(list, x) {
	return list.indexOf(x) !== -1;
}
`,
			expected: `function has(list, x) {
	return list.includes(x);
}
`,
		},
		{
			name: "Fix - Multiple issues",
			input: `if (a.indexOf(x) >= 0 && !b.indexOf(y) < 0) {
	run(c.indexOf(z) > -1);
}
`,
			expected: `if (a.includes(x) && b.includes(y)) {
	run(c.includes(z));
}
`,
		},
		{
			name: "Fix - Verbatim operands",
			input: "const ok = a.b.c.indexOf('x' + y) != -1;\n",
			expected: "const ok = a.b.c.includes('x' + y);\n",
		},
		{
			name: "Fix - Nested comparisons fix the inner one first",
			input: "a.indexOf(b.indexOf(c) !== -1) !== -1;\n",
			expected: "a.indexOf(b.includes(c)) !== -1;\n",
		},
		{
			name:     "Fix - Nothing to fix",
			input:    "const ok = a.includes(x);\n",
			expected: "const ok = a.includes(x);\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "test.js")
			require.NoError(t, os.WriteFile(path, []byte(tc.input), 0o644))

			var out bytes.Buffer
			fixer := New(false)
			fixer.Output = &out

			err := fixer.Fix(path, detect(t, path, tc.input))
			require.NoError(t, err)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(content))
		})
	}
}

func TestAutoFixerDryRun(t *testing.T) {
	input := "const ok = list.indexOf(x) !== -1;\n"
	path := filepath.Join(t.TempDir(), "dry.js")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	var out bytes.Buffer
	fixer := New(true)
	fixer.Output = &out

	err := fixer.Fix(path, detect(t, path, input))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, input, string(content))

	assert.Contains(t, out.String(), "Would fix issue in "+path+" at line 1")
	assert.Contains(t, out.String(), "list.includes(x)")
}

func TestAutoFixerSkipsIssuesWithoutFix(t *testing.T) {
	input := "const ok = list.indexOf(x) !== -1;\n"
	path := filepath.Join(t.TempDir(), "nofix.js")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	issues := detect(t, path, input)
	require.Len(t, issues, 1)
	issues[0].Fix = nil

	err := New(false).Fix(path, issues)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, input, string(content))
}

func TestAutoFixerRejectsBrokenResult(t *testing.T) {
	input := "const ok = list.indexOf(x) !== -1;\n"
	path := filepath.Join(t.TempDir(), "broken.js")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	issues := []tt.Issue{{
		Rule:    "prefer-includes",
		Message: "broken",
		Fix:     &tt.Fix{Start: 11, End: 33, Text: "list.includes(x"},
	}}

	var out bytes.Buffer
	fixer := New(false)
	fixer.Output = &out

	err := fixer.Fix(path, issues)
	require.Error(t, err)
	assert.ErrorIs(t, err, estree.ErrSyntax)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, input, string(content))
}

func TestAutoFixerMissingFile(t *testing.T) {
	err := New(false).Fix(filepath.Join(t.TempDir(), "missing.js"), nil)
	assert.Error(t, err)
}
