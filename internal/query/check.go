package query

import (
	"fmt"
	"sort"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

// Schema declares the kind of every property a filter may reference.
// Property paths use '/' as separator.
type Schema map[string]temporal.Kind

// checker walks a parsed filter once, resolves property kinds from the
// schema and rejects operand kind combinations no candidate could satisfy.
// It records the resolved kinds on IdentifierExpr and arithmetic BinaryExpr
// nodes so the evaluator can tell a statically invalid relation from one
// that depends on the runtime value of a TimeObject property.
type checker struct {
	schema     Schema
	properties map[string]struct{}
}

// Check validates node as a predicate over schema and returns the sorted
// names of the properties it references. A nil schema accepts any property
// as a TimeObject.
func Check(node ASTNode, schema Schema) ([]string, error) {
	c := &checker{schema: schema, properties: make(map[string]struct{})}
	if err := c.predicate(node); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(c.properties))
	for name := range c.properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *checker) predicate(node ASTNode) error {
	switch n := node.(type) {
	case *GroupExpr:
		return c.predicate(n.Expr)
	case *UnaryExpr:
		return c.predicate(n.Operand)
	case *BinaryExpr:
		if n.Operator != "and" && n.Operator != "or" {
			return &PositionError{Pos: nodePos(n), Err: fmt.Errorf("%w: %w", ErrSyntax, errExpectedPredicate)}
		}
		if err := c.predicate(n.Left); err != nil {
			return err
		}
		return c.predicate(n.Right)
	case *ComparisonExpr:
		return c.comparison(n)
	case *FunctionCallExpr:
		return c.relation(n)
	}
	return &PositionError{Pos: nodePos(node), Err: fmt.Errorf("%w: %w", ErrSyntax, errExpectedPredicate)}
}

// operandType is the static type of a value expression.
type operandType struct {
	kind temporal.Kind
	null bool
}

func (t operandType) String() string {
	if t.null {
		return "null"
	}
	return t.kind.String()
}

func (c *checker) value(node ASTNode) (operandType, error) {
	switch n := node.(type) {
	case *GroupExpr:
		return c.value(n.Expr)
	case *LiteralExpr:
		if n.Value == nil {
			return operandType{null: true}, nil
		}
		return operandType{kind: n.Value.Kind()}, nil
	case *IdentifierExpr:
		kind, err := c.property(n)
		if err != nil {
			return operandType{}, err
		}
		n.Kind = kind
		return operandType{kind: kind}, nil
	case *BinaryExpr:
		if n.Operator == "add" || n.Operator == "sub" {
			return c.arithmetic(n)
		}
	}
	return operandType{}, &PositionError{Pos: nodePos(node), Err: fmt.Errorf("%w: %w", ErrSyntax, errExpectedValue)}
}

func (c *checker) property(n *IdentifierExpr) (temporal.Kind, error) {
	kind := temporal.KindTimeObject
	if c.schema != nil {
		declared, ok := c.schema[n.Name]
		if !ok {
			return temporal.KindInvalid, &PositionError{Pos: n.Pos, Err: fmt.Errorf("%w: %s", ErrUnknownProperty, n.Name)}
		}
		kind = declared
	}
	c.properties[n.Name] = struct{}{}
	return kind, nil
}

func (c *checker) arithmetic(n *BinaryExpr) (operandType, error) {
	left, err := c.value(n.Left)
	if err != nil {
		return operandType{}, err
	}
	right, err := c.value(n.Right)
	if err != nil {
		return operandType{}, err
	}
	if left.null || right.null {
		return operandType{}, &PositionError{Pos: nodePos(n), Err: fmt.Errorf("%w: %w", temporal.ErrInvalidRelation, errNullInArithmetic)}
	}

	op, _ := temporal.ParseArithOp(n.Operator)
	kind, ok := arithmeticKind(op, left.kind, right.kind)
	if !ok {
		return operandType{}, &PositionError{Pos: nodePos(n), Err: fmt.Errorf("%w: %s %s %s is not defined",
			temporal.ErrInvalidRelation, left, n.Operator, right)}
	}
	n.Kind = kind
	return operandType{kind: kind}, nil
}

// arithmeticKind returns the result kind of left op right.
func arithmeticKind(op temporal.ArithOp, left, right temporal.Kind) (temporal.Kind, bool) {
	switch {
	case left.IsTemporal() && right == temporal.KindDuration:
		return left, true
	case op == temporal.OpAdd && left == temporal.KindDuration && right.IsTemporal():
		return right, true
	case left == temporal.KindDuration && right == temporal.KindDuration:
		return temporal.KindDuration, true
	case op == temporal.OpSub && mayBeInstant(left) && mayBeInstant(right):
		return temporal.KindDuration, true
	}
	return temporal.KindInvalid, false
}

func mayBeInstant(k temporal.Kind) bool {
	return k == temporal.KindInstant || k == temporal.KindTimeObject
}

func (c *checker) comparison(n *ComparisonExpr) error {
	left, err := c.value(n.Left)
	if err != nil {
		return err
	}
	right, err := c.value(n.Right)
	if err != nil {
		return err
	}

	switch {
	case left.null || right.null:
		if n.Operator != "eq" && n.Operator != "ne" {
			return &PositionError{Pos: nodePos(n), Err: fmt.Errorf("%w: %w", temporal.ErrInvalidRelation, errNullOnlyEquality)}
		}
		return nil
	case left.kind.IsTemporal() && right.kind.IsTemporal():
		return nil
	case left.kind == temporal.KindDuration && right.kind == temporal.KindDuration:
		return nil
	}
	return &PositionError{Pos: nodePos(n), Err: fmt.Errorf("%w: cannot compare %s %s %s",
		temporal.ErrInvalidRelation, left, n.Operator, right)}
}

func (c *checker) relation(n *FunctionCallExpr) error {
	rel, ok := temporal.ParseRelation(n.Function)
	if !ok {
		return &PositionError{Pos: n.Pos, Err: fmt.Errorf("%w: %s", ErrUnsupportedFunction, n.Function)}
	}
	if len(n.Args) != 2 {
		return &PositionError{Pos: n.Pos, Err: fmt.Errorf("%w: %s: %w", ErrSyntax, n.Function, errFunctionRequires2Arg)}
	}

	for i, arg := range n.Args {
		t, err := c.value(arg)
		if err != nil {
			return err
		}
		if t.null || !t.kind.IsTemporal() {
			return &PositionError{Pos: nodePos(arg), Err: fmt.Errorf("%w: %s argument %d must be an instant or interval, got %s",
				temporal.ErrInvalidRelation, n.Function, i+1, t)}
		}
		if i == 1 && rel.RequiresInterval() && t.kind == temporal.KindInstant {
			return &PositionError{Pos: nodePos(arg), Err: fmt.Errorf("%w: %s requires an interval as second argument",
				temporal.ErrInvalidRelation, n.Function)}
		}
	}
	return nil
}

// nodePos returns the position of the leftmost token of node, or 0.
func nodePos(node ASTNode) int {
	switch n := node.(type) {
	case *IdentifierExpr:
		return n.Pos
	case *LiteralExpr:
		return n.Pos
	case *FunctionCallExpr:
		return n.Pos
	case *BinaryExpr:
		return nodePos(n.Left)
	case *ComparisonExpr:
		return nodePos(n.Left)
	case *GroupExpr:
		return nodePos(n.Expr)
	}
	return 0
}

// staticKind returns the kind Check resolved for a value node.
func staticKind(node ASTNode) temporal.Kind {
	switch n := node.(type) {
	case *IdentifierExpr:
		return n.Kind
	case *LiteralExpr:
		if n.Value == nil {
			return temporal.KindInvalid
		}
		return n.Value.Kind()
	case *BinaryExpr:
		return n.Kind
	case *GroupExpr:
		return staticKind(n.Expr)
	}
	return temporal.KindInvalid
}
