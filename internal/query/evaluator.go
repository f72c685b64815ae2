package query

import (
	"fmt"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

// Resolver supplies the value of a property for one candidate. A property
// without a value reports false.
type Resolver interface {
	Property(name string) (temporal.Value, bool)
}

// Program is a parsed and checked filter. It is immutable after Compile and
// safe for concurrent use.
type Program struct {
	Text       string
	Root       ASTNode
	Properties []string
}

// Compile parses filter and checks it against schema.
func Compile(filter string, schema Schema) (*Program, error) {
	root, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	props, err := Check(root, schema)
	if err != nil {
		return nil, err
	}
	return &Program{Text: filter, Root: root, Properties: props}, nil
}

// String returns the canonical form of the program.
func (p *Program) String() string { return Format(p.Root) }

// Evaluate runs the program against one candidate.
func (p *Program) Evaluate(r Resolver) (bool, error) {
	return evalPredicate(p.Root, r)
}

// EvaluateValue runs a program that references at most one property, binding
// v to it. A nil v is a property without a value.
func (p *Program) EvaluateValue(v temporal.Value) (bool, error) {
	if len(p.Properties) > 1 {
		return false, fmt.Errorf("%w: %v", errMultipleProperties, p.Properties)
	}
	return evalPredicate(p.Root, singleValue{v})
}

type singleValue struct{ v temporal.Value }

func (s singleValue) Property(string) (temporal.Value, bool) {
	return s.v, s.v != nil
}

func evalPredicate(node ASTNode, r Resolver) (bool, error) {
	switch n := node.(type) {
	case *GroupExpr:
		return evalPredicate(n.Expr, r)
	case *UnaryExpr:
		ok, err := evalPredicate(n.Operand, r)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case *BinaryExpr:
		return evalLogical(n, r)
	case *ComparisonExpr:
		return evalComparison(n, r)
	case *FunctionCallExpr:
		return evalRelation(n, r)
	}
	return false, fmt.Errorf("%w: %T", errExpectedPredicate, node)
}

func evalLogical(n *BinaryExpr, r Resolver) (bool, error) {
	left, err := evalPredicate(n.Left, r)
	if err != nil {
		return false, err
	}
	switch n.Operator {
	case "and":
		if !left {
			return false, nil
		}
	case "or":
		if left {
			return true, nil
		}
	default:
		return false, fmt.Errorf("%w: %s", errExpectedPredicate, n.Operator)
	}
	return evalPredicate(n.Right, r)
}

func evalComparison(n *ComparisonExpr, r Resolver) (bool, error) {
	left, err := evalValue(n.Left, r)
	if err != nil {
		return false, err
	}
	right, err := evalValue(n.Right, r)
	if err != nil {
		return false, err
	}

	cmp, ok := temporal.ParseComparator(n.Operator)
	if !ok {
		return false, fmt.Errorf("%w: unknown operator %s", ErrSyntax, n.Operator)
	}

	// A missing value only satisfies eq null; ne null tests presence.
	if left == nil || right == nil {
		both := left == nil && right == nil
		switch cmp {
		case temporal.CmpEq:
			return both, nil
		case temporal.CmpNe:
			return !both, nil
		}
		return false, nil
	}

	a, aOp := left.(temporal.Operand)
	b, bOp := right.(temporal.Operand)
	if aOp && bOp {
		return temporal.Compare(cmp, a, b), nil
	}
	x, xDur := left.(temporal.Duration)
	y, yDur := right.(temporal.Duration)
	if xDur && yDur {
		return temporal.CompareDurations(cmp, x, y)
	}
	return false, fmt.Errorf("%w: cannot compare %s %s %s", temporal.ErrInvalidRelation, left.Kind(), n.Operator, right.Kind())
}

func evalRelation(n *FunctionCallExpr, r Resolver) (bool, error) {
	rel, ok := temporal.ParseRelation(n.Function)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFunction, n.Function)
	}
	if len(n.Args) != 2 {
		return false, fmt.Errorf("%w: %s: %w", ErrSyntax, n.Function, errFunctionRequires2Arg)
	}

	operands := make([]temporal.Operand, 2)
	for i, arg := range n.Args {
		v, err := evalValue(arg, r)
		if err != nil {
			return false, err
		}
		if v == nil {
			return false, nil
		}
		o, ok := v.(temporal.Operand)
		if !ok {
			return false, fmt.Errorf("%w: %s argument %d is a %s", temporal.ErrInvalidRelation, n.Function, i+1, v.Kind())
		}
		operands[i] = o
	}

	// A TimeObject property may hold an instant for some candidates; those
	// candidates simply do not lie during anything.
	if rel.RequiresInterval() && operands[1].Kind() != temporal.KindInterval &&
		staticKind(n.Args[1]) == temporal.KindTimeObject {
		return false, nil
	}
	return temporal.Relate(rel, operands[0], operands[1])
}

// evalValue resolves a value node. A nil result is a missing value.
func evalValue(node ASTNode, r Resolver) (temporal.Value, error) {
	switch n := node.(type) {
	case *GroupExpr:
		return evalValue(n.Expr, r)
	case *LiteralExpr:
		return n.Value, nil
	case *IdentifierExpr:
		v, ok := r.Property(n.Name)
		if !ok {
			return nil, nil
		}
		return v, nil
	case *BinaryExpr:
		return evalArithmetic(n, r)
	}
	return nil, fmt.Errorf("%w: %T", errExpectedValue, node)
}

func evalArithmetic(n *BinaryExpr, r Resolver) (temporal.Value, error) {
	op, ok := temporal.ParseArithOp(n.Operator)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errExpectedValue, n.Operator)
	}
	left, err := evalValue(n.Left, r)
	if err != nil {
		return nil, err
	}
	right, err := evalValue(n.Right, r)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}

	switch l := left.(type) {
	case temporal.Operand:
		switch rv := right.(type) {
		case temporal.Duration:
			return temporal.Shift(l, op, rv)
		case temporal.Instant:
			if li, ok := l.(temporal.Instant); ok && op == temporal.OpSub {
				return temporal.Difference(li, rv)
			}
			// an interval held by a TimeObject has no difference to an instant
			if staticKind(n.Left) == temporal.KindTimeObject {
				return nil, nil
			}
		case temporal.Interval:
			if staticKind(n.Right) == temporal.KindTimeObject && op == temporal.OpSub {
				return nil, nil
			}
		}
	case temporal.Duration:
		switch rv := right.(type) {
		case temporal.Duration:
			return temporal.SumDurations(l, op, rv)
		case temporal.Operand:
			if op == temporal.OpAdd {
				return temporal.Shift(rv, op, l)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s %s %s is not defined", temporal.ErrInvalidRelation, left.Kind(), n.Operator, right.Kind())
}
