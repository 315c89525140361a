// Package codegen lowers a syntax tree to the asm instruction model.
// Lowering is total: every tree the parser can build has a lowering.
package codegen

import (
	"log"

	"github.com/takoeight0821/tinycc/asm"
	"github.com/takoeight0821/tinycc/ast"
)

func Lower(program ast.Program) *asm.Program {
	switch p := program.(type) {
	case *ast.FunctionDefinition:
		return &asm.Program{Function: lowerFunction(p.Function)}
	default:
		log.Panicf("codegen: unexpected program %T", program)
		return nil
	}
}

func lowerFunction(f *ast.Function) *asm.Function {
	return &asm.Function{Name: f.Name, Instructions: lowerStatement(f.Body)}
}

func lowerStatement(stmt ast.Statement) []asm.Instruction {
	switch s := stmt.(type) {
	case *ast.Return:
		return []asm.Instruction{
			&asm.Mov{Src: lowerExpression(s.Expr), Dst: asm.AX},
			&asm.Ret{},
		}
	default:
		log.Panicf("codegen: unexpected statement %T", stmt)
		return nil
	}
}

func lowerExpression(expr ast.Expression) asm.Operand {
	switch e := expr.(type) {
	case *ast.ConstantInt:
		return asm.Immediate(e.Value)
	default:
		log.Panicf("codegen: unexpected expression %T", expr)
		return nil
	}
}
