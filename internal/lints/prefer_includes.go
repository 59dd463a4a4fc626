package lints

import (
	"github.com/gnolang/inclint/internal/estree"
	tt "github.com/gnolang/inclint/internal/types"
)

const (
	preferIncludesRule    = "prefer-includes"
	preferIncludesMessage = "Use `.includes()` when checking for existence."
)

// Diagnostic is a single report produced for one AST node.
type Diagnostic struct {
	Node    *estree.Node
	Message string
	Fix     tt.Fix
}

// leftShape classifies the left operand of a comparison.
type leftShape uint8

const (
	leftOther         leftShape = iota
	leftSearch                  // x.indexOf(p)
	leftNegatedSearch           // !x.indexOf(p)
)

// rightShape classifies the right operand of a comparison.
type rightShape uint8

const (
	rightOther       rightShape = iota
	rightNegativeOne            // -1
	rightZero                   // 0
)

type idiom struct {
	left     leftShape
	operator string
	right    rightShape
}

// includesIdioms lists every comparison rewritten to target.includes(pattern).
// Both polarities produce the same replacement; the enclosing expression is
// expected to carry the intended sense.
var includesIdioms = map[idiom]bool{
	{leftSearch, "!==", rightNegativeOne}: true,
	{leftSearch, "!=", rightNegativeOne}:  true,
	{leftSearch, ">", rightNegativeOne}:   true,
	{leftSearch, ">=", rightZero}:         true,

	{leftNegatedSearch, "===", rightNegativeOne}: true,
	{leftNegatedSearch, "==", rightNegativeOne}:  true,
	{leftNegatedSearch, "<", rightZero}:          true,
}

// searchCall is a `target.indexOf(pattern)` call.
type searchCall struct {
	target  *estree.Node
	pattern *estree.Node
}

// asSearchCall matches a call of a method named indexOf with at least one
// argument. Extra arguments are ignored.
func asSearchCall(n *estree.Node) (searchCall, bool) {
	if !n.Is(estree.TypeCallExpression) || n.Optional {
		return searchCall{}, false
	}
	callee := n.Callee
	if !callee.Is(estree.TypeMemberExpression) || callee.Computed || callee.Optional {
		return searchCall{}, false
	}
	if !callee.Property.Is(estree.TypeIdentifier) || callee.Property.Name != "indexOf" {
		return searchCall{}, false
	}
	if len(n.Arguments) == 0 {
		return searchCall{}, false
	}
	return searchCall{target: callee.Object, pattern: n.Arguments[0]}, true
}

// isNegation reports whether n is a logical-not expression and returns its operand.
func isNegation(n *estree.Node) (*estree.Node, bool) {
	if !n.Is(estree.TypeUnaryExpression) || n.Operator != "!" {
		return nil, false
	}
	return n.Argument, true
}

// isNegativeOneSentinel matches -1 written as unary minus applied to 1.
func isNegativeOneSentinel(operator string, value any) bool {
	return operator == "-" && value == float64(1)
}

func classifyLeft(n *estree.Node) (leftShape, searchCall) {
	if call, ok := asSearchCall(n); ok {
		return leftSearch, call
	}
	if operand, ok := isNegation(n); ok {
		if call, ok := asSearchCall(operand); ok {
			return leftNegatedSearch, call
		}
	}
	return leftOther, searchCall{}
}

func classifyRight(n *estree.Node) rightShape {
	switch {
	case n.Is(estree.TypeUnaryExpression):
		if n.Argument.Is(estree.TypeLiteral) && isNegativeOneSentinel(n.Operator, n.Argument.Value) {
			return rightNegativeOne
		}
	case n.Is(estree.TypeLiteral):
		if n.Value == float64(0) {
			return rightZero
		}
	}
	return rightOther
}

// CheckIncludesComparison inspects one binary comparison. It returns a
// diagnostic when the comparison tests an indexOf result against -1 or 0 in
// one of the recognized forms.
func CheckIncludesComparison(node *estree.Node, src *estree.Source) (Diagnostic, bool) {
	if !node.Is(estree.TypeBinaryExpression) {
		return Diagnostic{}, false
	}

	left, call := classifyLeft(node.Left)
	if left == leftOther {
		return Diagnostic{}, false
	}
	if !includesIdioms[idiom{left, node.Operator, classifyRight(node.Right)}] {
		return Diagnostic{}, false
	}

	return Diagnostic{
		Node:    node,
		Message: preferIncludesMessage,
		Fix: tt.Fix{
			Start: node.Start(),
			End:   node.End(),
			Text:  renderIncludes(src, call.target, call.pattern),
		},
	}, true
}

// renderIncludes splices the verbatim source of target and pattern into an
// includes() call.
func renderIncludes(src *estree.Source, target, pattern *estree.Node) string {
	return src.Text(target) + ".includes(" + src.Text(pattern) + ")"
}

// DetectPreferIncludes reports indexOf comparisons that can be written with includes().
// Example: arr.indexOf(x) !== -1 -> arr.includes(x)
func DetectPreferIncludes(filename string, file *estree.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	estree.Walk(file.Program, func(n *estree.Node) bool {
		diag, ok := CheckIncludesComparison(n, file.Source)
		if ok {
			issues = append(issues, newIssue(preferIncludesRule, filename, file.Source, diag, severity))
		}
		return true
	})

	return issues, nil
}

func newIssue(rule, filename string, src *estree.Source, diag Diagnostic, severity tt.Severity) tt.Issue {
	start := src.Position(diag.Node.Start())
	end := src.Position(diag.Node.End())
	start.Filename, end.Filename = filename, filename

	fix := diag.Fix
	return tt.Issue{
		Rule:       rule,
		Filename:   filename,
		Start:      start,
		End:        end,
		Message:    diag.Message,
		Suggestion: fix.Text,
		Severity:   severity,
		Fix:        &fix,
	}
}
