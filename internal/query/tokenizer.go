package query

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenNull
	TokenDateTime
	TokenInterval
	TokenDuration
	TokenOperator
	TokenLogical
	TokenNot
	TokenLParen
	TokenRParen
	TokenComma
	TokenArithmetic
	TokenSlash
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:        "end of input",
	TokenIdentifier: "identifier",
	TokenNull:       "null",
	TokenDateTime:   "date-time literal",
	TokenInterval:   "interval literal",
	TokenDuration:   "duration literal",
	TokenOperator:   "comparison operator",
	TokenLogical:    "logical operator",
	TokenNot:        "not",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenComma:      "','",
	TokenArithmetic: "arithmetic operator",
	TokenSlash:      "'/'",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token represents a single token in the filter expression
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Tokenizer tokenizes temporal filter expressions
type Tokenizer struct {
	input string
	pos   int
	ch    rune
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{
		input: input,
		pos:   0,
	}
	if len(input) > 0 {
		t.ch = rune(input[0])
	}
	return t
}

// advance moves to the next character
func (t *Tokenizer) advance() {
	t.pos++
	if t.pos >= len(t.input) {
		t.ch = 0 // EOF
	} else {
		t.ch = rune(t.input[t.pos])
	}
}

// peek looks ahead without advancing
func (t *Tokenizer) peek() rune {
	if t.pos+1 >= len(t.input) {
		return 0
	}
	return rune(t.input[t.pos+1])
}

// skipWhitespace skips whitespace characters
func (t *Tokenizer) skipWhitespace() {
	for t.ch == ' ' || t.ch == '\t' || t.ch == '\n' || t.ch == '\r' {
		t.advance()
	}
}

// readQuoted reads a single-quoted body. A doubled quote is an escaped quote.
func (t *Tokenizer) readQuoted() (string, bool) {
	t.advance() // skip opening quote

	var result strings.Builder
	for t.ch != 0 {
		if t.ch == '\'' {
			if t.peek() != '\'' {
				t.advance() // skip closing quote
				return result.String(), true
			}
			t.advance()
		}
		result.WriteRune(t.ch)
		t.advance()
	}
	return result.String(), false
}

// readTimestamp reads the raw text of one timestamp. Validation is left to
// the literal parser so errors can name the whole token. A '-' before the T
// separates date fields and after it starts the offset. A comma is read only
// as the decimal sign of the seconds field, otherwise it separates arguments.
func (t *Tokenizer) readTimestamp() string {
	start := t.pos
	var seenT, offset, fraction bool
	colons := 0
	for t.ch != 0 {
		switch c := t.ch; {
		case unicode.IsDigit(c), c == '-' && !seenT:
		case c == 'T' || c == 't':
			seenT = true
		case c == ':':
			if !offset {
				colons++
			}
		case c == 'Z' || c == 'z' || c == '+' || (c == '-' && seenT):
			offset = true
		case c == '.':
			fraction = true
		case c == ',':
			if !seenT || offset || fraction || colons < 2 || !unicode.IsDigit(t.peek()) {
				return t.input[start:t.pos]
			}
			fraction = true
		default:
			return t.input[start:t.pos]
		}
		t.advance()
	}
	return t.input[start:t.pos]
}

// readIdentifier reads an identifier or keyword
func (t *Tokenizer) readIdentifier() string {
	var result strings.Builder

	for t.ch != 0 && (unicode.IsLetter(t.ch) || unicode.IsDigit(t.ch) || t.ch == '_' || t.ch == '@' || t.ch == '.') {
		result.WriteRune(t.ch)
		t.advance()
	}

	return result.String()
}

// NextToken returns the next token
func (t *Tokenizer) NextToken() (*Token, error) {
	t.skipWhitespace()

	if t.ch == 0 {
		return &Token{Type: TokenEOF, Pos: t.pos}, nil
	}

	pos := t.pos

	if token := t.tokenizeTemporal(pos); token != nil {
		return token, nil
	}

	if token := t.tokenizeSpecialChar(pos); token != nil {
		return token, nil
	}

	token, err := t.tokenizeIdentifierOrKeyword(pos)
	if err != nil || token != nil {
		return token, err
	}

	return nil, syntaxErrorf(t.pos, "unexpected character '%c'", t.ch)
}

// tokenizeTemporal tokenizes date-time and interval literals. Both start
// with a digit; a '/' directly followed by a digit joins two timestamps into
// an interval.
func (t *Tokenizer) tokenizeTemporal(pos int) *Token {
	if !unicode.IsDigit(t.ch) {
		return nil
	}
	value := t.readTimestamp()
	if t.ch == '/' && unicode.IsDigit(t.peek()) {
		t.advance() // consume '/'
		end := t.readTimestamp()
		return &Token{Type: TokenInterval, Value: value + "/" + end, Pos: pos}
	}
	return &Token{Type: TokenDateTime, Value: value, Pos: pos}
}

// tokenizeSpecialChar tokenizes special characters (parentheses, comma, path separator)
func (t *Tokenizer) tokenizeSpecialChar(pos int) *Token {
	switch t.ch {
	case '(':
		t.advance()
		return &Token{Type: TokenLParen, Value: "(", Pos: pos}
	case ')':
		t.advance()
		return &Token{Type: TokenRParen, Value: ")", Pos: pos}
	case ',':
		t.advance()
		return &Token{Type: TokenComma, Value: ",", Pos: pos}
	case '/':
		t.advance()
		return &Token{Type: TokenSlash, Value: "/", Pos: pos}
	}
	return nil
}

// tokenizeIdentifierOrKeyword tokenizes identifiers, keywords and the
// duration'...' literal form.
func (t *Tokenizer) tokenizeIdentifierOrKeyword(pos int) (*Token, error) {
	if !unicode.IsLetter(t.ch) && t.ch != '_' && t.ch != '@' {
		return nil, nil
	}

	value := t.readIdentifier()
	lower := strings.ToLower(value)

	// duration'P1D' is a single literal; the quote must follow directly
	if lower == "duration" && t.ch == '\'' {
		body, ok := t.readQuoted()
		if !ok {
			return nil, syntaxErrorf(pos, "unterminated duration literal")
		}
		return &Token{Type: TokenDuration, Value: body, Pos: pos}, nil
	}

	if token := t.classifyKeyword(lower, pos); token != nil {
		return token, nil
	}

	return &Token{Type: TokenIdentifier, Value: value, Pos: pos}, nil
}

// classifyKeyword classifies a keyword and returns the appropriate token
func (t *Tokenizer) classifyKeyword(lower string, pos int) *Token {
	switch lower {
	case "and":
		return &Token{Type: TokenLogical, Value: "and", Pos: pos}
	case "or":
		return &Token{Type: TokenLogical, Value: "or", Pos: pos}
	case "not":
		return &Token{Type: TokenNot, Value: "not", Pos: pos}
	case "null":
		return &Token{Type: TokenNull, Value: "null", Pos: pos}
	case "eq", "ne", "gt", "ge", "lt", "le":
		return &Token{Type: TokenOperator, Value: lower, Pos: pos}
	case "add", "sub":
		return &Token{Type: TokenArithmetic, Value: lower, Pos: pos}
	}
	return nil
}

// TokenizeAll returns all tokens from the input
func (t *Tokenizer) TokenizeAll() ([]*Token, error) {
	var tokens []*Token

	for {
		token, err := t.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
