// Package emit renders the asm model as AT&T-syntax assembly text.
package emit

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/takoeight0821/tinycc/asm"
	"github.com/takoeight0821/tinycc/target"
)

const indent = "    "

// Emitter writes assembly for one target platform.
type Emitter struct {
	Target target.Platform
}

func New(platform target.Platform) *Emitter {
	return &Emitter{Target: platform}
}

// Emit writes the assembly for program to w.
func (e *Emitter) Emit(w io.Writer, program *asm.Program) error {
	_, err := io.WriteString(w, e.String(program))
	return err
}

// String returns the assembly for program.
func (e *Emitter) String(program *asm.Program) string {
	var b strings.Builder
	e.function(&b, program.Function)

	if e.Target.StackNote() {
		b.WriteString("\n")
		b.WriteString(indent + `.section .note.GNU-stack,"",@progbits` + "\n")
	}

	return b.String()
}

func (e *Emitter) function(b *strings.Builder, f *asm.Function) {
	name := e.Target.Symbol(f.Name)
	fmt.Fprintf(b, "%s.globl %s\n", indent, name)
	fmt.Fprintf(b, "%s:\n", name)
	for _, instr := range f.Instructions {
		b.WriteString(indent)
		b.WriteString(instruction(instr))
		b.WriteString("\n")
	}
}

func instruction(instr asm.Instruction) string {
	switch i := instr.(type) {
	case *asm.Mov:
		return fmt.Sprintf("movl  %s, %s", operand(i.Src), operand(i.Dst))
	case *asm.Ret:
		return "ret"
	default:
		log.Panicf("emit: unexpected instruction %T", instr)
		return ""
	}
}

func operand(op asm.Operand) string {
	switch o := op.(type) {
	case asm.Immediate:
		return fmt.Sprintf("$%d", int64(o))
	case asm.Register:
		return register(o)
	default:
		log.Panicf("emit: unexpected operand %T", op)
		return ""
	}
}

func register(r asm.Register) string {
	switch r {
	case asm.AX:
		return "%eax"
	default:
		log.Panicf("emit: unknown register %d", int(r))
		return ""
	}
}
