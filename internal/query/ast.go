package query

import (
	"strings"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

// ASTNode represents a node in the abstract syntax tree
type ASTNode interface {
	astNode()
}

// BinaryExpr represents a logical connective (and, or) or an arithmetic
// offset (add, sub).
type BinaryExpr struct {
	Left     ASTNode
	Operator string
	Right    ASTNode
	// Kind is the static result kind of an arithmetic node, set by Check.
	Kind temporal.Kind
}

func (e *BinaryExpr) astNode() {}

// UnaryExpr represents a unary expression (e.g., not X)
type UnaryExpr struct {
	Operator string
	Operand  ASTNode
}

func (e *UnaryExpr) astNode() {}

// ComparisonExpr represents a comparison (e.g., validTime lt 2016-01-01T07:00:00Z)
type ComparisonExpr struct {
	Left     ASTNode
	Operator string
	Right    ASTNode
}

func (e *ComparisonExpr) astNode() {}

// FunctionCallExpr represents a relation call (e.g., during(resultTime, I))
type FunctionCallExpr struct {
	Function string
	Args     []ASTNode
	Pos      int
}

func (e *FunctionCallExpr) astNode() {}

// IdentifierExpr represents a property path
type IdentifierExpr struct {
	Name string
	Pos  int
	// Kind is the declared kind of the property, set by Check.
	Kind temporal.Kind
}

func (e *IdentifierExpr) astNode() {}

// LiteralExpr represents a literal value
type LiteralExpr struct {
	Value temporal.Value // nil for null
	Type  string         // "instant", "interval", "duration", "null"
	Raw   string
	Pos   int
}

func (e *LiteralExpr) astNode() {}

// GroupExpr represents a grouped expression (parentheses)
type GroupExpr struct {
	Expr ASTNode
}

func (e *GroupExpr) astNode() {}

// Format renders a node in canonical filter syntax: lower-case keywords,
// canonical literals and explicit parentheses only where the source had them.
func Format(node ASTNode) string {
	var b strings.Builder
	format(&b, node)
	return b.String()
}

func format(b *strings.Builder, node ASTNode) {
	switch n := node.(type) {
	case *BinaryExpr:
		format(b, n.Left)
		b.WriteString(" " + n.Operator + " ")
		format(b, n.Right)
	case *UnaryExpr:
		b.WriteString(n.Operator + " ")
		format(b, n.Operand)
	case *ComparisonExpr:
		format(b, n.Left)
		b.WriteString(" " + n.Operator + " ")
		format(b, n.Right)
	case *FunctionCallExpr:
		b.WriteString(n.Function + "(")
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(",")
			}
			format(b, arg)
		}
		b.WriteString(")")
	case *IdentifierExpr:
		b.WriteString(n.Name)
	case *LiteralExpr:
		switch n.Type {
		case "null":
			b.WriteString("null")
		case "duration":
			b.WriteString("duration'" + n.Value.String() + "'")
		default:
			b.WriteString(n.Value.String())
		}
	case *GroupExpr:
		b.WriteString("(")
		format(b, n.Expr)
		b.WriteString(")")
	}
}
