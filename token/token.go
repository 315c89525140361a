package token

import (
	"fmt"

	"github.com/takoeight0821/tinycc/span"
)

type Kind int

const (
	ILLEGAL Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	SEMICOLON

	// Literals and identifiers.
	IDENTIFIER
	CONSTANT

	// Keywords.
	keywordBegin
	INT
	VOID
	RETURN
	keywordEnd
)

var kindNames = [...]string{
	ILLEGAL:    "illegal",
	LEFTPAREN:  "`(`",
	RIGHTPAREN: "`)`",
	LEFTBRACE:  "`{`",
	RIGHTBRACE: "`}`",
	SEMICOLON:  "`;`",
	IDENTIFIER: "identifier",
	CONSTANT:   "constant",
	INT:        "`int`",
	VOID:       "`void`",
	RETURN:     "`return`",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsKeyword() bool {
	return keywordBegin < k && k < keywordEnd
}

// Keywords maps reserved words to their kinds.
var Keywords = map[string]Kind{
	"int":    INT,
	"void":   VOID,
	"return": RETURN,
}

// Punctuation maps single-character tokens to their kinds.
var Punctuation = map[rune]Kind{
	'(': LEFTPAREN,
	')': RIGHTPAREN,
	'{': LEFTBRACE,
	'}': RIGHTBRACE,
	';': SEMICOLON,
}

type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Span    span.Span
}

// Int returns the value of a CONSTANT token.
func (t Token) Int() (int64, bool) {
	n, ok := t.Literal.(int64)
	return n, ok && t.Kind == CONSTANT
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %s, %v}", t.Kind, t.Lexeme, t.Span, t.Literal)
}

// Pretty returns the token the way it appears in messages.
func (t Token) Pretty() string {
	return "`" + t.Lexeme + "`"
}
