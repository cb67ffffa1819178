package condition

import "fmt"

// ParseOptions tunes the accepted grammar.
type ParseOptions struct {
	// AllowNot enables the unary '!' operator. The default language has
	// only && and ||.
	AllowNot bool
}

// Parser builds an Expr from tokens using recursive descent:
//
//	expr    := andExpr { "||" andExpr }
//	andExpr := unary { "&&" unary }
//	unary   := [ "!" ] unary | primary
//	primary := IDENT | "(" expr ")"
type Parser struct {
	input  string
	tokens []Token
	pos    int
	opts   ParseOptions
}

// NewParser creates a parser over tokens produced from input.
func NewParser(input string, tokens []Token, opts ParseOptions) *Parser {
	return &Parser{input: input, tokens: tokens, opts: opts}
}

// Parse parses a condition with the default grammar.
func Parse(input string) (Expr, error) {
	return ParseWith(input, ParseOptions{})
}

// ParseWith parses a condition with explicit options.
func ParseWith(input string, opts ParseOptions) (Expr, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(input, tokens, opts).Parse()
}

// Parse consumes every token and returns the expression tree.
func (p *Parser) Parse() (Expr, error) {
	if p.peek().Type == TokenEOF {
		return nil, p.errorf(p.peek(), "empty condition")
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorf(tok, "unexpected %s after expression", describe(tok))
	}
	return expr, nil
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if tok := p.peek(); tok.Type == TokenNot {
		if !p.opts.AllowNot {
			return nil, p.errorf(tok, "negation is not supported")
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenIdentifier:
		p.advance()
		return &Ident{Name: tok.Value, Pos: tok.Pos}, nil
	case TokenLeftParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRightParen {
			return nil, p.errorf(closing, "expected ')' to close '(' at offset %d, found %s", tok.Pos, describe(closing))
		}
		p.advance()
		return inner, nil
	default:
		return nil, p.errorf(tok, "expected fault mode name or '(', found %s", describe(tok))
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	if tok.Type == TokenIdentifier {
		return fmt.Sprintf("identifier %q", tok.Value)
	}
	return tok.Type.String()
}
