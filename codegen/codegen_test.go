package codegen_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/tinycc/asm"
	"github.com/takoeight0821/tinycc/ast"
	"github.com/takoeight0821/tinycc/codegen"
	"github.com/takoeight0821/tinycc/parser"
)

func TestLowerReturn(t *testing.T) {
	t.Parallel()

	program := &ast.FunctionDefinition{
		Function: &ast.Function{
			Name: "main",
			Body: &ast.Return{Expr: &ast.ConstantInt{Value: 2}},
		},
	}

	expected := &asm.Program{
		Function: &asm.Function{
			Name: "main",
			Instructions: []asm.Instruction{
				&asm.Mov{Src: asm.Immediate(2), Dst: asm.AX},
				&asm.Ret{},
			},
		},
	}

	if diff := cmp.Diff(expected, codegen.Lower(program)); diff != "" {
		t.Errorf("Lower mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerShape(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"int main(void) { return 0; }",
		"int f(void) { return 9223372036854775807; }",
	} {
		program, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}

		instrs := codegen.Lower(program).Function.Instructions
		if len(instrs) != 2 {
			t.Fatalf("Lower(%q) produced %d instructions, expected 2", input, len(instrs))
		}
		mov, ok := instrs[0].(*asm.Mov)
		if !ok {
			t.Fatalf("Lower(%q) first instruction = %v, expected mov", input, instrs[0])
		}
		if _, ok := mov.Src.(asm.Immediate); !ok || mov.Dst != asm.AX {
			t.Errorf("Lower(%q) mov = %v, expected immediate into ax", input, mov)
		}
		if _, ok := instrs[1].(*asm.Ret); !ok {
			t.Errorf("Lower(%q) last instruction = %v, expected ret", input, instrs[1])
		}
	}
}

func TestLowerString(t *testing.T) {
	t.Parallel()

	program, err := parser.Parse("int main(void) { return 42; }")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	expected := "(program (function main (mov (imm 42) (reg ax)) (ret)))"
	if actual := codegen.Lower(program).String(); actual != expected {
		t.Errorf("Lower(...).String() = %q, expected %q", actual, expected)
	}
}
