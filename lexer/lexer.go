package lexer

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/tinycc/span"
	"github.com/takoeight0821/tinycc/token"
)

// Lexer produces tokens from source one at a time.
// After the end of input or the first error, Next returns io.EOF.
type Lexer struct {
	source string

	start   int // start of current lexeme
	current int // current position in source
	done    bool
}

func New(source string) *Lexer {
	return &Lexer{source: source, start: 0, current: 0}
}

// Lex scans the whole source and returns its tokens, stopping at the first error.
func Lex(source string) ([]token.Token, error) {
	tokens := []token.Token{}
	for tok, err := range New(source).All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// All returns the remaining tokens as a lazy sequence. The sequence ends after
// the last token or after yielding the first error.
func (l *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Offset is the byte offset just past the last consumed character.
func (l *Lexer) Offset() int {
	return l.current
}

// Next returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	if l.done {
		return token.Token{}, io.EOF
	}

	tok, err := l.scanToken()
	if err != nil {
		l.done = true
	}

	return tok, err
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return r
}

func (l *Lexer) advance() rune {
	r, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return r
}

func (l *Lexer) makeToken(kind token.Kind, literal any) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  l.source[l.start:l.current],
		Literal: literal,
		Span:    span.New(l.start, l.current),
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) scanToken() (token.Token, error) {
	l.skipWhitespace()
	if l.isAtEnd() {
		return token.Token{}, io.EOF
	}

	l.start = l.current
	c := l.peek()
	switch {
	case isAlpha(c):
		return l.identifier(), nil
	case isDigit(c):
		return l.constant()
	}

	if k, ok := token.Punctuation[c]; ok {
		l.advance()
		return l.makeToken(k, nil), nil
	}

	return token.Token{}, &Error{Kind: UnexpectedCharacter, Char: c, At: span.Single(l.start)}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func (l *Lexer) identifier() token.Token {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	if k, ok := token.Keywords[l.source[l.start:l.current]]; ok {
		return l.makeToken(k, nil)
	}

	return l.makeToken(token.IDENTIFIER, nil)
}

func (l *Lexer) constant() (token.Token, error) {
	for isDigit(l.peek()) {
		l.advance()
	}

	if next := l.peek(); !l.isAtEnd() && (unicode.IsLetter(next) || next == '_') {
		return token.Token{}, &Error{Kind: InvalidConstSuffix, Char: next, At: span.Single(l.current)}
	}

	value, err := strconv.ParseInt(l.source[l.start:l.current], 10, 64)
	if err != nil {
		return token.Token{}, &Error{Kind: InvalidIntegerLiteral, At: span.New(l.start, l.current), Err: err}
	}

	return l.makeToken(token.CONSTANT, value), nil
}

type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	InvalidConstSuffix
	InvalidIntegerLiteral
)

// Error is a lexical error located in the source.
type Error struct {
	Kind ErrorKind
	Char rune // offending character for UnexpectedCharacter and InvalidConstSuffix
	At   span.Span
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character '%c'", e.Char)
	case InvalidConstSuffix:
		return fmt.Sprintf("invalid suffix '%c' on integer constant", e.Char)
	case InvalidIntegerLiteral:
		return "unable to convert integer literal value to int"
	default:
		return fmt.Sprintf("lexical error %d", int(e.Kind))
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Span() span.Span {
	return e.At
}
