package estree

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrSyntax is returned when the source contains syntax errors.
var ErrSyntax = errors.New("syntax error")

// Parse parses a JavaScript source and converts the tree-sitter concrete
// syntax tree into an ESTree-shaped tree.
func Parse(ctx context.Context, filename string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	source := NewSource(filename, src)
	root := tree.RootNode()
	if root.HasError() {
		pos := source.Position(int(firstError(root).StartByte()))
		return nil, fmt.Errorf("%s:%d:%d: %w", filename, pos.Line, pos.Column, ErrSyntax)
	}

	c := &converter{src: src}
	program := c.convert(root)
	sort.Slice(c.comments, func(i, j int) bool {
		return c.comments[i].Start() < c.comments[j].Start()
	})

	return &File{
		Program:  program,
		Comments: c.comments,
		Source:   source,
	}, nil
}

// firstError returns the first ERROR or missing node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	return n
}

type converter struct {
	src      []byte
	comments []*Node
}

func (c *converter) convert(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}
	c.collectComments(n)

	node := &Node{
		Type:  n.Type(),
		Range: [2]int{int(n.StartByte()), int(n.EndByte())},
	}

	switch n.Type() {
	case "program":
		node.Type = TypeProgram
		node.Children = c.namedChildren(n)

	case "parenthesized_expression":
		// parentheses are not part of the ESTree shape
		if inner := c.namedChildren(n); len(inner) == 1 {
			return inner[0]
		}
		node.Children = c.namedChildren(n)

	case "binary_expression":
		node.Type = TypeBinaryExpression
		node.Operator = n.ChildByFieldName("operator").Type()
		switch node.Operator {
		case "&&", "||", "??":
			node.Type = TypeLogicalExpression
		}
		node.Left = c.convert(n.ChildByFieldName("left"))
		node.Right = c.convert(n.ChildByFieldName("right"))
		node.Children = []*Node{node.Left, node.Right}

	case "unary_expression":
		node.Type = TypeUnaryExpression
		node.Operator = n.ChildByFieldName("operator").Type()
		node.Argument = c.convert(n.ChildByFieldName("argument"))
		node.Children = []*Node{node.Argument}

	case "call_expression":
		node.Type = TypeCallExpression
		node.Optional = hasOptionalChain(n)
		node.Callee = c.convert(n.ChildByFieldName("function"))
		node.Children = []*Node{node.Callee}

		args := n.ChildByFieldName("arguments")
		if args == nil || args.Type() != "arguments" {
			node.Type = TypeTaggedTemplate
			if quasi := c.convert(args); quasi != nil {
				node.Children = append(node.Children, quasi)
			}
			break
		}
		c.collectComments(args)
		node.Arguments = c.namedChildren(args)
		node.Children = append(node.Children, node.Arguments...)

	case "member_expression":
		node.Type = TypeMemberExpression
		node.Optional = hasOptionalChain(n)
		node.Object = c.convert(n.ChildByFieldName("object"))
		node.Property = c.convert(n.ChildByFieldName("property"))
		node.Children = []*Node{node.Object, node.Property}

	case "subscript_expression":
		node.Type = TypeMemberExpression
		node.Computed = true
		node.Optional = hasOptionalChain(n)
		node.Object = c.convert(n.ChildByFieldName("object"))
		node.Property = c.convert(n.ChildByFieldName("index"))
		node.Children = []*Node{node.Object, node.Property}

	case "identifier", "property_identifier", "private_property_identifier",
		"shorthand_property_identifier", "statement_identifier":
		node.Type = TypeIdentifier
		node.Name = n.Content(c.src)

	case "this":
		node.Type = TypeThisExpression

	case "number":
		node.Type = TypeLiteral
		node.Raw = n.Content(c.src)
		node.Value = parseNumber(node.Raw)

	case "string":
		node.Type = TypeLiteral
		node.Raw = n.Content(c.src)
		node.Value = unquote(node.Raw)

	case "true", "false":
		node.Type = TypeLiteral
		node.Raw = n.Content(c.src)
		node.Value = node.Raw == "true"

	case "null":
		node.Type = TypeLiteral
		node.Raw = n.Content(c.src)

	case "regex":
		node.Type = TypeLiteral
		node.Raw = n.Content(c.src)
		node.Regex = &Regex{}
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			node.Regex.Pattern = pattern.Content(c.src)
		}
		if flags := n.ChildByFieldName("flags"); flags != nil {
			node.Regex.Flags = flags.Content(c.src)
		}

	case "template_string":
		node.Type = TypeTemplateLiteral
		node.Children = c.namedChildren(n)

	default:
		node.Children = c.namedChildren(n)
	}

	return node
}

// namedChildren converts the named, non-comment children of n.
func (c *converter) namedChildren(n *sitter.Node) []*Node {
	var children []*Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if converted := c.convert(child); converted != nil {
			children = append(children, converted)
		}
	}
	return children
}

func (c *converter) collectComments(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "comment" {
			continue
		}
		raw := child.Content(c.src)
		comment := &Node{
			Type:  TypeLineComment,
			Raw:   raw,
			Range: [2]int{int(child.StartByte()), int(child.EndByte())},
		}
		if strings.HasPrefix(raw, "/*") {
			comment.Type = TypeBlockComment
			comment.Value = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
		} else {
			comment.Value = strings.TrimPrefix(raw, "//")
		}
		c.comments = append(c.comments, comment)
	}
}

func hasOptionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "optional_chain", "?.":
			return true
		}
	}
	return false
}

// parseNumber returns the float64 value of a numeric literal, or nil for
// BigInt literals and anything it cannot represent.
func parseNumber(raw string) any {
	raw = strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(raw, "n") {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return float64(v)
	}
	return nil
}

func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	return raw[1 : len(raw)-1]
}
