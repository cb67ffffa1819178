// Package condition implements the enabling-condition language of error
// modes: boolean expressions over fault-mode names joined with && and ||
// and grouped with parentheses.
//
// Conditions go through two separate phases. Parse turns text into an AST
// and reports *SyntaxError. Bind resolves every identifier against a
// Resolver and reports *UndefinedReferenceError. The resulting Bound
// predicate is immutable and can be evaluated any number of times.
package condition

import "fmt"

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenAnd        // &&
	TokenOr         // ||
	TokenNot        // !
	TokenLeftParen  // (
	TokenRightParen // )
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier:
		return "identifier"
	case TokenAnd:
		return "'&&'"
	case TokenOr:
		return "'||'"
	case TokenNot:
		return "'!'"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	default:
		return fmt.Sprintf("Token(%d)", int(t))
	}
}

// Token is one lexical token. Pos is the byte offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a condition string.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns every token of the input followed by TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return append(tokens, Token{Type: TokenEOF, Pos: l.pos}), nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) next() (Token, error) {
	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil
	case '!':
		l.pos++
		return Token{Type: TokenNot, Value: "!", Pos: start}, nil
	case '&', '|':
		if l.peekAhead(1) != ch {
			return Token{}, &SyntaxError{Input: l.input, Pos: start, Msg: fmt.Sprintf("expected %q", string([]byte{ch, ch}))}
		}
		l.pos += 2
		if ch == '&' {
			return Token{Type: TokenAnd, Value: "&&", Pos: start}, nil
		}
		return Token{Type: TokenOr, Value: "||", Pos: start}, nil
	}

	if isIdentStart(ch) {
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TokenIdentifier, Value: l.input[start:l.pos], Pos: start}, nil
	}

	return Token{}, &SyntaxError{Input: l.input, Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)}
}

func (l *Lexer) peekAhead(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Fault-mode names in the field use dots and dashes (e.g. "pump-1.leak").
func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9') || ch == '.' || ch == '-'
}

// IsIdentifier reports whether name can be referenced from a condition.
func IsIdentifier(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentPart(name[i]) {
			return false
		}
	}
	return true
}
