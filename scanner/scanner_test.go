package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

func TestProjectScanner(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"app.js":                   "a.indexOf(b) !== -1;",
		"lib/util.mjs":             "export {};",
		"README.md":                "This is a text file",
		"node_modules/dep/main.js": "module.exports = {};",
		"src/node_modules.js":      "x;",
	})

	scanner := New(tempDir, ".js", ".mjs").SkipDirs("node_modules")
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	paths := make([]string, 0, len(scannedFiles))
	for _, file := range scannedFiles {
		paths = append(paths, file.Path)
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}

	assert.Equal(t, []string{
		filepath.Join(tempDir, "app.js"),
		filepath.Join(tempDir, "lib", "util.mjs"),
		filepath.Join(tempDir, "src", "node_modules.js"),
	}, paths)
}

func TestScannerRootIsNeverSkipped(t *testing.T) {
	root := filepath.Join(t.TempDir(), "node_modules")
	writeTree(t, root, map[string]string{"index.js": "x;"})

	files, err := New(root, ".js").SkipDirs("node_modules").Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "index.js"), files[0].Path)
}

func TestScannerMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), ".js").Scan()
	assert.Error(t, err)
}

func TestIsTargetFile(t *testing.T) {
	t.Parallel()
	s := New(".", ".js", ".cjs")
	assert.True(t, s.IsTargetFile("a/b.js"))
	assert.True(t, s.IsTargetFile("b.cjs"))
	assert.False(t, s.IsTargetFile("b.ts"))
	assert.True(t, New(".").IsTargetFile("anything.txt"))
}
