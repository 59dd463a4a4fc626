package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/inclint/internal"
	tt "github.com/gnolang/inclint/internal/types"
)

// watchDebounce groups bursts of events on one file into a single run.
const watchDebounce = 100 * time.Millisecond

// Watch lints JavaScript files under paths each time they are written or
// created and hands the result to report. Writes that leave the content
// unchanged are not reported again. It blocks until ctx is done.
func Watch(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	report func(filename string, issues []tt.Issue),
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	// files holds explicitly watched files, roots the watched directory trees
	files := make(map[string]bool)
	var roots []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files[filepath.Clean(path)] = true
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("error watching %s: %w", path, err)
			}
			continue
		}
		if err := addWatchDirs(watcher, path); err != nil {
			return err
		}
		roots = append(roots, filepath.Clean(path))
	}

	watched := func(name string) bool {
		name = filepath.Clean(name)
		if files[name] {
			return true
		}
		for _, root := range roots {
			if rel, err := filepath.Rel(root, name); err == nil && filepath.IsLocal(rel) {
				return true
			}
		}
		return false
	}

	// unchanged content is not linted or reported again
	cache := internal.NewCache()

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		due     = make(chan string, 16)
	)
	schedule := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[name]; ok {
			timer.Reset(watchDebounce)
			return
		}
		pending[name] = time.AfterFunc(watchDebounce, func() {
			mu.Lock()
			delete(pending, name)
			mu.Unlock()
			select {
			case due <- name:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(watcher, event.Name); err != nil && logger != nil {
						logger.Error("Error watching directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !hasDesiredExtension(event.Name) {
				continue
			}
			schedule(event.Name)

		case name := <-due:
			content, err := os.ReadFile(name)
			if err != nil {
				// removed or renamed before the debounce fired
				cache.Invalidate(name)
				continue
			}
			if _, ok := cache.Get(name, content); ok {
				continue
			}
			issues, err := engine.Run(name)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", name), zap.Error(err))
				}
				continue
			}
			cache.Set(name, content, issues)
			report(name, issues)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Error("Watcher error", zap.Error(err))
			}
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	skip := make(map[string]bool, len(skipDirs))
	for _, name := range skipDirs {
		skip[name] = true
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skip[info.Name()] {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
		return nil
	})
}
