package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/takoeight0821/tinycc/ast"
	"github.com/takoeight0821/tinycc/lexer"
	"github.com/takoeight0821/tinycc/span"
	"github.com/takoeight0821/tinycc/token"
)

// Parser pulls tokens from a lexer on demand and stops at the first error.
type Parser struct {
	lexer *lexer.Lexer
}

func New(l *lexer.Lexer) *Parser {
	return &Parser{lexer: l}
}

// Parse parses a whole source file.
func Parse(source string) (ast.Program, error) {
	return New(lexer.New(source)).Parse()
}

// Parse parses a program and checks that no input is left after it.
func (p *Parser) Parse() (ast.Program, error) {
	program, err := p.program()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return program, nil
}

// ParseStatement parses input consisting of a single statement.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return stmt, nil
}

// ParseExpression parses input consisting of a single expression.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return expr, nil
}

// program = function ;
func (p *Parser) program() (ast.Program, error) {
	function, err := p.function()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{Function: function}, nil
}

// function = "int" IDENTIFIER "(" "void" ")" "{" statement "}" ;
func (p *Parser) function() (*ast.Function, error) {
	if _, err := p.expect(token.INT); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	for _, kind := range []token.Kind{token.LEFTPAREN, token.VOID, token.RIGHTPAREN, token.LEFTBRACE} {
		if _, err := p.expect(kind); err != nil {
			return nil, err
		}
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RIGHTBRACE); err != nil {
		return nil, err
	}

	return &ast.Function{Name: name.Lexeme, Body: body}, nil
}

// statement = "return" expression ";" ;
func (p *Parser) statement() (ast.Statement, error) {
	if _, err := p.expect(token.RETURN); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Return{Expr: expr}, nil
}

// expression = CONSTANT ;
func (p *Parser) expression() (ast.Expression, error) {
	tok, err := p.expect(token.CONSTANT)
	if err != nil {
		return nil, err
	}
	value, ok := tok.Int()
	if !ok {
		return nil, &UnexpectedTokenError{Found: tok, Expected: token.CONSTANT}
	}

	return &ast.ConstantInt{Value: value}, nil
}

// next pulls one token from the lexer.
func (p *Parser) next() (token.Token, error) {
	tok, err := p.lexer.Next()
	if errors.Is(err, io.EOF) {
		return tok, &UnexpectedEOFError{At: span.Single(p.lexer.Offset())}
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return tok, &LexError{Err: lexErr}
	}
	if err != nil {
		return tok, err
	}

	return tok, nil
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, &UnexpectedTokenError{Found: tok, Expected: kind}
	}

	return tok, nil
}

func (p *Parser) expectEnd() error {
	tok, err := p.lexer.Next()
	if errors.Is(err, io.EOF) {
		return nil
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &LexError{Err: lexErr}
	}
	if err != nil {
		return err
	}

	return &UnexpectedTrailingError{Found: tok}
}

type UnexpectedEOFError struct {
	At span.Span
}

func (e *UnexpectedEOFError) Error() string {
	return "unexpected end of input"
}

func (e *UnexpectedEOFError) Span() span.Span {
	return e.At
}

type UnexpectedTokenError struct {
	Found    token.Token
	Expected token.Kind
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s: expected %v", e.Found.Pretty(), e.Expected)
}

func (e *UnexpectedTokenError) Span() span.Span {
	return e.Found.Span
}

type UnexpectedTrailingError struct {
	Found token.Token
}

func (e *UnexpectedTrailingError) Error() string {
	return fmt.Sprintf("unexpected token %s after end of program", e.Found.Pretty())
}

func (e *UnexpectedTrailingError) Span() span.Span {
	return e.Found.Span
}

// LexError is a lexical error surfaced while pulling a token.
type LexError struct {
	Err *lexer.Error
}

func (e *LexError) Error() string {
	return e.Err.Error()
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func (e *LexError) Span() span.Span {
	return e.Err.Span()
}
