package query

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

// ASTParser parses filter expressions into an AST
type ASTParser struct {
	tokens  []*Token
	current int
}

// NewASTParser creates a new AST parser
func NewASTParser(tokens []*Token) *ASTParser {
	return &ASTParser{
		tokens:  tokens,
		current: 0,
	}
}

// ParseFilter tokenizes and parses a filter expression
func ParseFilter(filter string) (ASTNode, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, &PositionError{Pos: 0, Err: fmt.Errorf("%w: %w", ErrSyntax, errEmptyFilter)}
	}
	tokens, err := NewTokenizer(filter).TokenizeAll()
	if err != nil {
		return nil, err
	}
	return NewASTParser(tokens).Parse()
}

// currentToken returns the current token
func (p *ASTParser) currentToken() *Token {
	if p.current >= len(p.tokens) {
		return &Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

// advance moves to the next token
func (p *ASTParser) advance() *Token {
	token := p.currentToken()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return token
}

// expect checks if the current token matches the expected type and advances
func (p *ASTParser) expect(tokenType TokenType) error {
	token := p.currentToken()
	if token.Type != tokenType {
		return syntaxErrorf(token.Pos, "expected %v, got %v", tokenType, describe(token))
	}
	p.advance()
	return nil
}

func describe(token *Token) string {
	if token.Type == TokenEOF || token.Value == "" {
		return token.Type.String()
	}
	return token.Type.String() + " '" + token.Value + "'"
}

// Parse parses the tokens into an AST
func (p *ASTParser) Parse() (ASTNode, error) {
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	// Verify all tokens were consumed (except EOF)
	if p.currentToken().Type != TokenEOF {
		return nil, syntaxErrorf(p.currentToken().Pos, "unexpected %v after expression", describe(p.currentToken()))
	}

	return node, nil
}

// parseOr handles OR expressions (lowest precedence)
func (p *ASTParser) parseOr() (ASTNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "or" {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: op.Value,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd handles AND expressions
func (p *ASTParser) parseAnd() (ASTNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "and" {
		op := p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: op.Value,
			Right:    right,
		}
	}

	return left, nil
}

// parseNot handles NOT expressions
func (p *ASTParser) parseNot() (ASTNode, error) {
	if p.currentToken().Type == TokenNot {
		op := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Operator: op.Value,
			Operand:  operand,
		}, nil
	}

	return p.parseComparison()
}

// parseComparison handles comparison expressions
func (p *ASTParser) parseComparison() (ASTNode, error) {
	left, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type == TokenOperator {
		op := p.advance()
		right, err := p.parseArithmetic()
		if err != nil {
			return nil, err
		}
		return &ComparisonExpr{
			Left:     left,
			Operator: op.Value,
			Right:    right,
		}, nil
	}

	return left, nil
}

// parseArithmetic handles add and sub, left associative
func (p *ASTParser) parseArithmetic() (ASTNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenArithmetic {
		op := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: op.Value,
			Right:    right,
		}
	}

	return left, nil
}

// parsePrimary handles primary expressions (literals, properties, function calls, grouped expressions)
func (p *ASTParser) parsePrimary() (ASTNode, error) {
	token := p.currentToken()

	if token.Type == TokenLParen {
		return p.parseGroupedExpression()
	}

	node, err := p.parseLiteral(token)
	if err != nil || node != nil {
		return node, err
	}

	if token.Type == TokenIdentifier {
		return p.parseIdentifierOrFunctionCall(token)
	}

	return nil, syntaxErrorf(token.Pos, "unexpected %v", describe(token))
}

// parseGroupedExpression parses a grouped expression like (expr)
func (p *ASTParser) parseGroupedExpression() (ASTNode, error) {
	p.advance() // consume '('
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &GroupExpr{Expr: expr}, nil
}

// parseLiteral parses temporal and null literals. It returns nil, nil when
// the token is not a literal.
func (p *ASTParser) parseLiteral(token *Token) (ASTNode, error) {
	var (
		value temporal.Value
		kind  string
		err   error
	)
	switch token.Type {
	case TokenDateTime:
		kind = "instant"
		value, err = temporal.ParseInstant(token.Value)
	case TokenInterval:
		kind = "interval"
		value, err = temporal.ParseInterval(token.Value)
	case TokenDuration:
		kind = "duration"
		value, err = temporal.ParseDuration(token.Value)
	case TokenNull:
		p.advance()
		return &LiteralExpr{Type: "null", Raw: token.Value, Pos: token.Pos}, nil
	default:
		return nil, nil
	}
	if err != nil {
		return nil, &PositionError{Pos: token.Pos, Err: err}
	}
	p.advance()
	return &LiteralExpr{Value: value, Type: kind, Raw: token.Value, Pos: token.Pos}, nil
}

// parseIdentifierOrFunctionCall parses a property path or function call
func (p *ASTParser) parseIdentifierOrFunctionCall(token *Token) (ASTNode, error) {
	p.advance()

	if p.currentToken().Type == TokenLParen {
		return p.parseFunctionCall(token)
	}

	if p.currentToken().Type == TokenSlash {
		return p.parsePropertyPath(token)
	}

	return &IdentifierExpr{Name: token.Value, Pos: token.Pos}, nil
}

// parseFunctionCall parses a function call like during(a, b)
func (p *ASTParser) parseFunctionCall(name *Token) (ASTNode, error) {
	p.advance() // consume '('

	var args []ASTNode

	if p.currentToken().Type != TokenRParen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.currentToken().Type == TokenComma {
				p.advance()
			} else {
				break
			}
		}
	}

	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &FunctionCallExpr{
		Function: strings.ToLower(name.Value),
		Args:     args,
		Pos:      name.Pos,
	}, nil
}

// parsePropertyPath parses a property path with slashes (e.g., Datastream/phenomenonTime)
func (p *ASTParser) parsePropertyPath(initial *Token) (ASTNode, error) {
	path := initial.Value

	for p.currentToken().Type == TokenSlash {
		p.advance() // consume '/'

		if p.currentToken().Type != TokenIdentifier {
			return nil, syntaxErrorf(p.currentToken().Pos, "expected identifier after '/' in property path")
		}

		path = path + "/" + p.currentToken().Value
		p.advance()
	}

	return &IdentifierExpr{Name: path, Pos: initial.Pos}, nil
}
