package lints

import (
	"strings"

	"github.com/gnolang/inclint/internal/estree"
	tt "github.com/gnolang/inclint/internal/types"
)

const preferIncludesRegexRule = "prefer-includes-regex"

// regexMetaChars are the characters that give a pattern meaning beyond a
// literal substring.
const regexMetaChars = `\^$.|?*+()[]{}`

// regexTest is a `/pattern/.test(target)` call.
type regexTest struct {
	target  *estree.Node
	pattern string
}

func asRegexTest(n *estree.Node) (regexTest, bool) {
	if !n.Is(estree.TypeCallExpression) || n.Optional || len(n.Arguments) == 0 {
		return regexTest{}, false
	}
	callee := n.Callee
	if !callee.Is(estree.TypeMemberExpression) || callee.Computed || callee.Optional {
		return regexTest{}, false
	}
	if !callee.Property.Is(estree.TypeIdentifier) || callee.Property.Name != "test" {
		return regexTest{}, false
	}
	literal := callee.Object
	if !literal.Is(estree.TypeLiteral) || literal.Regex == nil {
		return regexTest{}, false
	}
	if !isPlainStringPattern(literal.Regex) {
		return regexTest{}, false
	}
	return regexTest{target: n.Arguments[0], pattern: literal.Regex.Pattern}, true
}

// isPlainStringPattern reports whether a regular expression matches exactly
// its own text as a substring: no flags, no escapes, no metacharacters.
func isPlainStringPattern(re *estree.Regex) bool {
	return re.Flags == "" && re.Pattern != "" && !strings.ContainsAny(re.Pattern, regexMetaChars)
}

func renderRegexIncludes(src *estree.Source, target *estree.Node, pattern string) string {
	return src.Text(target) + ".includes('" + strings.ReplaceAll(pattern, "'", `\'`) + "')"
}

// CheckRegexTest inspects one call expression and reports a plain-string
// regular expression test that can be written with includes().
func CheckRegexTest(node *estree.Node, src *estree.Source) (Diagnostic, bool) {
	test, ok := asRegexTest(node)
	if !ok {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Node:    node,
		Message: preferIncludesMessage,
		Fix: tt.Fix{
			Start: node.Start(),
			End:   node.End(),
			Text:  renderRegexIncludes(src, test.target, test.pattern),
		},
	}, true
}

// DetectRegexIncludes reports regular expression tests with a plain-string pattern.
// Example: /foo/.test(s) -> s.includes('foo')
func DetectRegexIncludes(filename string, file *estree.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	estree.Walk(file.Program, func(n *estree.Node) bool {
		if diag, ok := CheckRegexTest(n, file.Source); ok {
			issues = append(issues, newIssue(preferIncludesRegexRule, filename, file.Source, diag, severity))
		}
		return true
	})

	return issues, nil
}
