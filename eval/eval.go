// Simple evaluator for testing.
package eval

import (
	"fmt"

	"github.com/takoeight0821/tinycc/asm"
)

// Machine executes the asm model directly.
type Machine struct {
	regs map[asm.Register]int32
}

func NewMachine() *Machine {
	return &Machine{regs: make(map[asm.Register]int32)}
}

type EvalError struct {
	Instr asm.Instruction
	Msg   string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("[eval] %v: %s", e.Instr, e.Msg)
}

// Run executes the program's function until ret and returns the value left in AX.
func (m *Machine) Run(program *asm.Program) (int32, error) {
	for _, instr := range program.Function.Instructions {
		switch i := instr.(type) {
		case *asm.Mov:
			v, err := m.operand(i, i.Src)
			if err != nil {
				return 0, err
			}
			dst, ok := i.Dst.(asm.Register)
			if !ok {
				return 0, &EvalError{Instr: instr, Msg: "destination is not a register"}
			}
			m.regs[dst] = v
		case *asm.Ret:
			return m.regs[asm.AX], nil
		default:
			return 0, &EvalError{Instr: instr, Msg: "unexpected instruction"}
		}
	}

	return 0, &EvalError{Instr: nil, Msg: "function falls off the end without ret"}
}

// movl operates on 32 bits, so immediates are truncated.
func (m *Machine) operand(instr asm.Instruction, op asm.Operand) (int32, error) {
	switch o := op.(type) {
	case asm.Immediate:
		return int32(o), nil
	case asm.Register:
		return m.regs[o], nil
	default:
		return 0, &EvalError{Instr: instr, Msg: fmt.Sprintf("unexpected operand %v", op)}
	}
}

// ExitStatus is the status a process reports when main returns value.
func ExitStatus(value int32) int {
	return int(uint8(value))
}
