package driver

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/takoeight0821/tinycc/codegen"
	"github.com/takoeight0821/tinycc/diag"
	"github.com/takoeight0821/tinycc/emit"
	"github.com/takoeight0821/tinycc/eval"
	"github.com/takoeight0821/tinycc/lexer"
	"github.com/takoeight0821/tinycc/parser"
	"github.com/takoeight0821/tinycc/target"
)

// Stage is the last step a compilation runs.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageCodegen
	StageAssembly
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageCodegen:
		return "codegen"
	case StageAssembly:
		return "assembly"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Compiler runs the pipeline on preprocessed source text.
type Compiler struct {
	Target target.Platform
	Stderr io.Writer
	Logger *log.Logger
}

func NewCompiler(platform target.Platform) *Compiler {
	return &Compiler{
		Target: platform,
		Stderr: os.Stderr,
		Logger: log.New(io.Discard, "", 0),
	}
}

// Compile translates source to assembly text.
func (c *Compiler) Compile(source string) (string, error) {
	return c.Run(source, StageAssembly)
}

// Run executes the pipeline up to stage and returns that stage's output:
// one token per line for StageLex, the syntax tree for StageParse, the
// instruction model for StageCodegen, and assembly text otherwise.
func (c *Compiler) Run(source string, stage Stage) (string, error) {
	if stage == StageLex {
		tokens, err := lexer.Lex(source)
		if err != nil {
			return "", fmt.Errorf("lex: %w", err)
		}
		c.Logger.Printf("lex: %d tokens", len(tokens))

		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.String())
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	program, err := parser.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	c.Logger.Print("parse: ok")
	if stage == StageParse {
		return program.String() + "\n", nil
	}

	lowered := codegen.Lower(program)
	c.Logger.Printf("codegen: %d instructions", len(lowered.Function.Instructions))
	if stage == StageCodegen {
		return lowered.String() + "\n", nil
	}

	c.Logger.Printf("emit: target %v", c.Target)
	return emit.New(c.Target).String(lowered), nil
}

// Evaluate compiles source and executes the result on an eval.Machine,
// returning the exit status the compiled program would report.
func (c *Compiler) Evaluate(source string) (int, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}

	value, err := eval.NewMachine().Run(codegen.Lower(program))
	if err != nil {
		return 0, err
	}

	return eval.ExitStatus(value), nil
}

// Report writes err to Stderr, rendering it against source when it carries a location.
func (c *Compiler) Report(source string, err error) {
	if loc, ok := diag.Locate(err); ok {
		if werr := diag.Fprint(c.Stderr, source, loc); werr != nil {
			c.Logger.Printf("report: %v", werr)
		}
		return
	}
	fmt.Fprintln(c.Stderr, err)
}

// ExitCode classifies a compilation failure for the process exit status.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitIO
	ExitLexical
	ExitSyntax
)

func Classify(err error) ExitCode {
	if err == nil {
		return ExitOK
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return ExitLexical
	}

	var (
		eofErr      *parser.UnexpectedEOFError
		tokenErr    *parser.UnexpectedTokenError
		trailingErr *parser.UnexpectedTrailingError
	)
	if errors.As(err, &eofErr) || errors.As(err, &tokenErr) || errors.As(err, &trailingErr) {
		return ExitSyntax
	}

	return ExitIO
}
