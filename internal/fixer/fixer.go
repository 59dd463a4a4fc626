package fixer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gnolang/inclint/internal/estree"
	tt "github.com/gnolang/inclint/internal/types"
)

type Fixer struct {
	DryRun bool
	Output io.Writer
}

func New(dryRun bool) *Fixer {
	return &Fixer{
		DryRun: dryRun,
		Output: os.Stdout,
	}
}

// Fix applies the fixes attached to issues to the given file. Fixes are
// applied from the end of the file backwards; a fix overlapping one already
// applied is skipped and will be reported again on the next run.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixable := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Fix != nil {
			fixable = append(fixable, issue)
		}
	}
	if len(fixable) == 0 {
		return nil
	}

	sort.Slice(fixable, func(i, j int) bool {
		if fixable[i].Fix.Start != fixable[j].Fix.Start {
			return fixable[i].Fix.Start > fixable[j].Fix.Start
		}
		return fixable[i].Fix.End > fixable[j].Fix.End
	})

	fixed, applied := applyFixes(content, fixable, func(issue tt.Issue) {
		if f.DryRun {
			fmt.Fprintf(f.Output, "Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Fprintf(f.Output, "Suggestion:\n%s\n", issue.Suggestion)
		}
	})

	if f.DryRun || applied == 0 {
		return nil
	}

	if _, err := estree.Parse(context.Background(), filename, fixed); err != nil {
		return fmt.Errorf("failed to parse fixed source: %w", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(f.Output, "Fixed %d issue(s) in %s\n", applied, filename)
	return nil
}

// applyFixes splices fixes sorted by descending start offset into content.
func applyFixes(content []byte, issues []tt.Issue, onApply func(tt.Issue)) ([]byte, int) {
	out := append([]byte(nil), content...)
	limit := len(out)
	applied := 0

	for _, issue := range issues {
		fix := issue.Fix
		if fix.Start < 0 || fix.Start > fix.End || fix.End > limit {
			continue
		}

		var buf []byte
		buf = append(buf, out[:fix.Start]...)
		buf = append(buf, fix.Text...)
		buf = append(buf, out[fix.End:]...)
		out = buf

		limit = fix.Start
		applied++
		onApply(issue)
	}

	return out, applied
}
