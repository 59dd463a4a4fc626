package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/inclint/internal"
	tt "github.com/gnolang/inclint/internal/types"
	"github.com/gnolang/inclint/scanner"
)

// DefaultConfigPath is the configuration file looked up when none is given.
const DefaultConfigPath = ".inclint.yaml"

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New creates a lint engine configured from the given configuration file.
// An empty path falls back to DefaultConfigPath, and a missing default file
// yields the default rule set.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := loadConfiguration(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(config.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProgressOutput receives the progress bar drawn while walking directories.
var ProgressOutput io.Writer = os.Stderr

type fileResult struct {
	issues []tt.Issue
	err    error
}

// ProcessPath lints a single file or every JavaScript file under a directory.
// Files that fail to process are logged and skipped. On cancellation the
// issues collected so far are returned together with the context error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Close()

	results := make(chan fileResult, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	issues := []tt.Issue{}
	var ctxErr error
dispatch:
	for _, filePath := range files {
		if ctx.Err() != nil {
			ctxErr = ctx.Err()
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			results <- fileResult{issues: fileIssues, err: err}
			_ = bar.Add(1)
		}(filePath)
	}

	wg.Wait()
	close(results)

	for result := range results {
		if result.err != nil {
			continue
		}
		issues = append(issues, result.issues...)
	}

	if ctxErr == nil {
		ctxErr = ctx.Err()
	}
	return issues, ctxErr
}

// collectFiles returns every lintable file under root.
func collectFiles(root string) ([]string, error) {
	scanned, err := newScanner(root).Scan()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(scanned))
	for _, f := range scanned {
		files = append(files, f.Path)
	}
	return files, nil
}

func newScanner(root string) *scanner.Scanner {
	return scanner.New(root, extensions...).SkipDirs(skipDirs...)
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

var extensions = []string{".js", ".jsx", ".mjs", ".cjs"}

var skipDirs = []string{"node_modules", ".git"}

func hasDesiredExtension(path string) bool {
	return newScanner("").IsTargetFile(path)
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration written by `inclint init`.
func DefaultConfig() Config {
	return Config{
		Name: "inclint",
		Rules: map[string]tt.ConfigRule{
			"prefer-includes":       {Severity: tt.SeverityError},
			"prefer-includes-regex": {Severity: tt.SeverityOff},
		},
	}
}

func loadConfiguration(configurationPath string) (Config, error) {
	explicit := configurationPath != ""
	if !explicit {
		configurationPath = DefaultConfigPath
	}

	config, err := parseConfigurationFile(configurationPath)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return config, err
}

// WriteConfigurationFile writes config as YAML to the given path.
func WriteConfigurationFile(configurationPath string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	return config, nil
}
