package internal

import (
	"github.com/gnolang/inclint/internal/estree"
	"github.com/gnolang/inclint/internal/lints"
	tt "github.com/gnolang/inclint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns a slice of Issues.
	Check(filename string, file *estree.File) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Fixable reports whether the rule attaches an automatic fix to its issues.
	Fixable() bool

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

type PreferIncludesRule struct {
	severity tt.Severity
}

func NewPreferIncludesRule() LintRule {
	return &PreferIncludesRule{
		severity: tt.SeverityError,
	}
}

func (r *PreferIncludesRule) Check(filename string, file *estree.File) ([]tt.Issue, error) {
	return lints.DetectPreferIncludes(filename, file, r.severity)
}

func (r *PreferIncludesRule) Name() string {
	return "prefer-includes"
}

func (r *PreferIncludesRule) Fixable() bool {
	return true
}

func (r *PreferIncludesRule) Severity() tt.Severity {
	return r.severity
}

func (r *PreferIncludesRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

// PreferIncludesRegexRule rewrites plain-string regular expression tests.
// It is off unless enabled in the configuration.
type PreferIncludesRegexRule struct {
	severity tt.Severity
}

func NewPreferIncludesRegexRule() LintRule {
	return &PreferIncludesRegexRule{
		severity: tt.SeverityOff,
	}
}

func (r *PreferIncludesRegexRule) Check(filename string, file *estree.File) ([]tt.Issue, error) {
	return lints.DetectRegexIncludes(filename, file, r.severity)
}

func (r *PreferIncludesRegexRule) Name() string {
	return "prefer-includes-regex"
}

func (r *PreferIncludesRegexRule) Fixable() bool {
	return true
}

func (r *PreferIncludesRegexRule) Severity() tt.Severity {
	return r.severity
}

func (r *PreferIncludesRegexRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
