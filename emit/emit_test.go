package emit_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/takoeight0821/tinycc/asm"
	"github.com/takoeight0821/tinycc/codegen"
	"github.com/takoeight0821/tinycc/emit"
	"github.com/takoeight0821/tinycc/parser"
	"github.com/takoeight0821/tinycc/target"
	"github.com/takoeight0821/tinycc/utils"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)
		return
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)
			return
		}

		program, err := parser.Parse(string(source))
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)
			return
		}
		lowered := codegen.Lower(program)

		for _, platform := range []target.Platform{target.Linux, target.Darwin} {
			g := goldie.New(t)
			name := fmt.Sprintf("%s.%v", filepath.Base(testfile), platform)
			g.Assert(t, name, []byte(emit.New(platform).String(lowered)))
		}
	}
}

func program(name string, n int64) *asm.Program {
	return &asm.Program{
		Function: &asm.Function{
			Name: name,
			Instructions: []asm.Instruction{
				&asm.Mov{Src: asm.Immediate(n), Dst: asm.AX},
				&asm.Ret{},
			},
		},
	}
}

func TestEmitLinux(t *testing.T) {
	t.Parallel()

	expected := "    .globl main\n" +
		"main:\n" +
		"    movl  $2, %eax\n" +
		"    ret\n" +
		"\n" +
		"    .section .note.GNU-stack,\"\",@progbits\n"

	var b strings.Builder
	if err := emit.New(target.Linux).Emit(&b, program("main", 2)); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if b.String() != expected {
		t.Errorf("Emit = %q, expected %q", b.String(), expected)
	}
}

func TestEmitDarwin(t *testing.T) {
	t.Parallel()

	expected := "    .globl _main\n" +
		"_main:\n" +
		"    movl  $-1, %eax\n" +
		"    ret\n"

	if actual := emit.New(target.Darwin).String(program("main", -1)); actual != expected {
		t.Errorf("String = %q, expected %q", actual, expected)
	}
}

func TestEmitOrder(t *testing.T) {
	t.Parallel()

	for _, platform := range []target.Platform{target.Linux, target.Darwin} {
		out := emit.New(platform).String(program("main", 7))

		var kinds []string
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, ".globl"):
				kinds = append(kinds, "globl")
			case strings.HasSuffix(line, ":"):
				kinds = append(kinds, "label")
			case strings.HasPrefix(line, "mov"):
				kinds = append(kinds, "mov")
			case line == "ret":
				kinds = append(kinds, "ret")
			}
		}

		if got := strings.Join(kinds, " "); got != "globl label mov ret" {
			t.Errorf("%v: emitted %q, expected globl label mov ret", platform, got)
		}
	}
}
