package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// AST

// Node is implemented by every syntax tree node.
// String renders the node as an S-expression.
type Node interface {
	fmt.Stringer
	node()
}

// Program is the root of a parsed source file.
type Program interface {
	Node
	program()
}

// FunctionDefinition is a program consisting of a single function.
type FunctionDefinition struct {
	Function *Function
}

func (p *FunctionDefinition) String() string {
	return parenthesize("program", p.Function).String()
}

func (*FunctionDefinition) node()    {}
func (*FunctionDefinition) program() {}

var _ Program = &FunctionDefinition{}

type Function struct {
	Name string
	Body Statement
}

func (f *Function) String() string {
	return parenthesize("function", atom(f.Name), f.Body).String()
}

func (*Function) node() {}

var _ Node = &Function{}

type Statement interface {
	Node
	stmt()
}

type Return struct {
	Expr Expression
}

func (r *Return) String() string {
	return parenthesize("return", r.Expr).String()
}

func (*Return) node() {}
func (*Return) stmt() {}

var _ Statement = &Return{}

type Expression interface {
	Node
	expr()
}

type ConstantInt struct {
	Value int64
}

func (c *ConstantInt) String() string {
	return parenthesize("constant", atom(strconv.FormatInt(c.Value, 10))).String()
}

func (*ConstantInt) node() {}
func (*ConstantInt) expr() {}

var _ Expression = &ConstantInt{}

type atom string

func (a atom) String() string {
	return string(a)
}

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat joins the string forms of elems with a single space, skipping empty ones.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
