// Package estree provides a read-only, ESTree-shaped view over JavaScript
// sources. Nodes carry the fields lint rules match on (type, operator,
// operands, callee, arguments, literal value) and their byte range in the
// original buffer.
package estree

// Node types produced by Parse. Grammar nodes without an ESTree counterpart
// keep their tree-sitter kind as Type.
const (
	TypeProgram           = "Program"
	TypeBinaryExpression  = "BinaryExpression"
	TypeLogicalExpression = "LogicalExpression"
	TypeUnaryExpression   = "UnaryExpression"
	TypeCallExpression    = "CallExpression"
	TypeMemberExpression  = "MemberExpression"
	TypeTaggedTemplate    = "TaggedTemplateExpression"
	TypeTemplateLiteral   = "TemplateLiteral"
	TypeThisExpression    = "ThisExpression"
	TypeIdentifier        = "Identifier"
	TypeLiteral           = "Literal"

	// comment kinds
	TypeLineComment  = "Line"
	TypeBlockComment = "Block"
)

// Regex holds the parts of a regular expression literal.
type Regex struct {
	Pattern string
	Flags   string
}

// Node is a single AST node. Only the fields relevant to its Type are set.
type Node struct {
	Type     string
	Operator string

	// BinaryExpression, LogicalExpression
	Left  *Node
	Right *Node

	// UnaryExpression
	Argument *Node

	// CallExpression
	Callee    *Node
	Arguments []*Node

	// MemberExpression
	Object   *Node
	Property *Node
	Computed bool

	// Optional is set on calls and member accesses that are part of an
	// optional chain (a?.b, a.b?.()).
	Optional bool

	// Literal
	Value any
	Raw   string
	Regex *Regex

	// Identifier
	Name string

	// Range is the [start, end) byte span of the node in its source.
	Range [2]int

	// Children lists the child nodes in source order, used for traversal.
	Children []*Node
}

func (n *Node) Start() int { return n.Range[0] }
func (n *Node) End() int   { return n.Range[1] }

// Is reports whether n is non-nil and of the given type.
func (n *Node) Is(typ string) bool {
	return n != nil && n.Type == typ
}

// Walk traverses the tree rooted at n in depth-first pre-order.
// If fn returns false the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Collect returns every node of the given type under n, in traversal order.
func Collect(n *Node, typ string) []*Node {
	var nodes []*Node
	Walk(n, func(node *Node) bool {
		if node.Type == typ {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// File is a parsed source file.
type File struct {
	Program  *Node
	Comments []*Node
	Source   *Source
}
