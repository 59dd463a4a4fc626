package nolint

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/gnolang/inclint/internal/estree"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes of a single file and checks if a position is nolinted.
type Manager struct {
	scopes []nolintScope
}

// nolintScope represents a line range in the code where nolint applies.
type nolintScope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// statement is the line range of a top-most statement starting on a line.
type statement struct {
	offset    int
	startLine int
	endLine   int
}

// ParseComments parses nolint comments in the given file and returns a Manager.
//
// Accepted forms are `// nolint` (all rules) and `// nolint:rule-a,rule-b`.
func ParseComments(file *estree.File) *Manager {
	manager := Manager{
		scopes: make([]nolintScope, 0, len(file.Comments)),
	}
	stmtMap := indexStatementsByLine(file)
	firstLine := firstStatementLine(file)
	lastLine := file.Source.Position(len(file.Source.Bytes())).Line

	for _, comment := range file.Comments {
		ns, err := parseComment(comment, file.Source, stmtMap, firstLine, lastLine)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes = append(manager.scopes, ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(
	comment *estree.Node,
	src *estree.Source,
	stmtMap map[int]statement,
	firstLine int,
	lastLine int,
) (nolintScope, error) {
	var ns nolintScope
	text, _ := comment.Value.(string)
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}
	rest := text[len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)

	pos := src.Position(comment.Start())
	endPos := src.Position(comment.End())

	// A comment above the first statement applies to the entire file
	if pos.Line < firstLine {
		ns.startLine = 1
		ns.endLine = lastLine
		return ns, nil
	}

	// Inline comments apply to the statement they trail
	if stmt, exists := stmtMap[pos.Line]; exists && stmt.offset < pos.Offset {
		ns.startLine = stmt.startLine
		ns.endLine = stmt.endLine
		return ns, nil
	}

	// Standalone comments apply to the statement on the next line,
	// including the comment line itself
	if stmt, exists := stmtMap[endPos.Line+1]; exists {
		ns.startLine = pos.Line
		ns.endLine = stmt.endLine
		return ns, nil
	}

	// default behavior:
	// apply only to the comment lines
	ns.startLine = pos.Line
	ns.endLine = endPos.Line
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// isStatement reports whether n is a statement or declaration node.
func isStatement(n *estree.Node) bool {
	return strings.HasSuffix(n.Type, "_statement") || strings.HasSuffix(n.Type, "_declaration")
}

// indexStatementsByLine traverses the tree once and maps each line to the
// first statement starting on it.
func indexStatementsByLine(file *estree.File) map[int]statement {
	stmtMap := make(map[int]statement)
	estree.Walk(file.Program, func(n *estree.Node) bool {
		if !isStatement(n) {
			return true
		}
		start := file.Source.Position(n.Start())
		if _, exists := stmtMap[start.Line]; !exists {
			stmtMap[start.Line] = statement{
				offset:    start.Offset,
				startLine: start.Line,
				endLine:   file.Source.Position(n.End()).Line,
			}
		}
		return true
	})
	return stmtMap
}

// firstStatementLine returns the line of the first top-level statement, or
// one past the last line for a file without statements.
func firstStatementLine(file *estree.File) int {
	if children := file.Program.Children; len(children) > 0 {
		return file.Source.Position(children[0].Start()).Line
	}
	return file.Source.Position(len(file.Source.Bytes())).Line + 1
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	for _, ns := range m.scopes {
		if pos.Line < ns.startLine || pos.Line > ns.endLine {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
