// Package asm models the target instructions that codegen produces and emit renders.
package asm

import (
	"fmt"
	"strings"
)

type Program struct {
	Function *Function
}

func (p *Program) String() string {
	return fmt.Sprintf("(program %v)", p.Function)
}

type Function struct {
	Name         string
	Instructions []Instruction
}

func (f *Function) String() string {
	var b strings.Builder
	b.WriteString("(function ")
	b.WriteString(f.Name)
	for _, instr := range f.Instructions {
		b.WriteString(" ")
		b.WriteString(instr.String())
	}
	b.WriteString(")")
	return b.String()
}

type Instruction interface {
	fmt.Stringer
	instruction()
}

// Mov copies Src into Dst.
type Mov struct {
	Src Operand
	Dst Operand
}

func (m *Mov) String() string {
	return fmt.Sprintf("(mov %v %v)", m.Src, m.Dst)
}

func (*Mov) instruction() {}

type Ret struct{}

func (*Ret) String() string {
	return "(ret)"
}

func (*Ret) instruction() {}

var (
	_ Instruction = &Mov{}
	_ Instruction = &Ret{}
)

type Operand interface {
	fmt.Stringer
	operand()
}

type Immediate int64

func (i Immediate) String() string {
	return fmt.Sprintf("(imm %d)", int64(i))
}

func (Immediate) operand() {}

type Register int

const (
	// AX holds a function's return value.
	AX Register = iota
)

func (r Register) String() string {
	switch r {
	case AX:
		return "(reg ax)"
	default:
		return fmt.Sprintf("(reg %d)", int(r))
	}
}

func (Register) operand() {}

var (
	_ Operand = Immediate(0)
	_ Operand = AX
)
