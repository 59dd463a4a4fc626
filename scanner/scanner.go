package scanner

import (
	"os"
	"path/filepath"
	"sort"
)

type FileInfo struct {
	Path string
	Size int64
}

// Scanner collects source files under a root directory.
type Scanner struct {
	rootDir    string
	extensions []string
	skipDirs   map[string]bool
}

func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
		skipDirs:   make(map[string]bool),
	}
}

// SkipDirs excludes directories with the given base names from the walk.
// The root itself is always scanned.
func (s *Scanner) SkipDirs(names ...string) *Scanner {
	for _, name := range names {
		s.skipDirs[name] = true
	}
	return s
}

// Scan returns every target file under the root, sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != s.rootDir && s.skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsTargetFile(path) {
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, err
}

// IsTargetFile reports whether path has one of the scanned extensions.
// A scanner without extensions accepts every file.
func (s *Scanner) IsTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
