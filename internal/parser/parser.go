package parser

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/monkey-parser/internal/apperr"
	"github.com/DjordjeVuckovic/monkey-parser/internal/ast"
	"github.com/DjordjeVuckovic/monkey-parser/internal/lexer"
	"github.com/DjordjeVuckovic/monkey-parser/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression // argument is the left operand
)

type Option func(*Parser)

func WithMode(mode Mode) Option {
	return func(p *Parser) {
		p.mode = mode
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser builds an AST from a token stream with one token of lookahead.
// Statements are parsed by recursive descent, expressions by precedence
// climbing over the prefix/infix rule tables. A Parser is single use.
type Parser struct {
	tokenizer token.Tokenizer
	mode      Mode
	logger    *slog.Logger

	curToken  token.Token
	peekToken token.Token

	// braces opened and not yet closed up to curToken
	openBraces int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	errors []string
}

func New(t token.Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		tokenizer: t,
		mode:      ModeRecover,
		logger:    slog.Default(),
		errors:    []string{},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.TRUE:     p.parseBoolean,
		token.FALSE:    p.parseBoolean,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.IF:       p.parseIfExpression,
		token.FUNCTION: p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.LPAREN:   p.parseCallExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse lexes and parses input in one go. The program is nil only in strict
// mode after a failed statement; the error is non-nil whenever any syntax
// error was recorded.
func Parse(input string, opts ...Option) (*ast.Program, error) {
	p := New(lexer.New(input), opts...)
	program := p.ParseProgram()
	return program, p.Err()
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			if p.mode == ModeStrict {
				p.logger.Debug("Aborting program parse", "token", p.curToken.Type.String(), "errors", len(p.errors))
				return nil
			}
			p.synchronize()
		} else {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// Errors returns every recorded message in detection order.
func (p *Parser) Errors() []string {
	return p.errors
}

// Err wraps the recorded messages in a validation error, or returns nil.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return apperr.NewValidationDetails("program rejected", p.errors)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokenizer.NextToken()

	switch p.curToken.Type {
	case token.LBRACE:
		p.openBraces++
	case token.RBRACE:
		if p.openBraces > 0 {
			p.openBraces--
		}
	}
}

// synchronize skips the rest of a failed statement: up to a `;` outside any
// block, or to the `}` that closes the outermost open block. A `;` right
// after that brace belongs to the same statement and is consumed too.
func (p *Parser) synchronize() {
	skipped := 0
	for !p.curTokenIs(token.EOF) {
		if p.openBraces == 0 && (p.curTokenIs(token.SEMICOLON) || p.curTokenIs(token.RBRACE)) {
			break
		}
		p.nextToken()
		skipped++
	}
	if p.curTokenIs(token.RBRACE) && p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		skipped++
	}

	p.logger.Debug("Recovered from statement error", "skipped", skipped, "token", p.curToken.Type.String())
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek advances only when peekToken has type t; otherwise it records a
// peek error and leaves the cursor where it is.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}

	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errorf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errorf("no prefix parse function for %s found", t)
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}
