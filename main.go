package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/takoeight0821/tinycc/config"
	"github.com/takoeight0821/tinycc/diag"
	"github.com/takoeight0821/tinycc/driver"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tinycc: ")

	cfg, err := config.Load()
	if err != nil {
		log.Print(err)
		os.Exit(int(driver.ExitIO))
	}

	var (
		lex, parse, codegen, assembly bool
	)
	flag.BoolVar(&lex, "lex", false, "run the lexer, but stop before parsing")
	flag.BoolVar(&parse, "parse", false, "run the lexer and parser, but stop before assembly generation")
	flag.BoolVar(&codegen, "codegen", false, "run up to assembly generation, but stop before emission")
	flag.BoolVar(&assembly, "S", false, "emit an assembly file, but stop before assembling and linking")
	flag.Var(&cfg.Target, "target", "target platform: linux or darwin")
	flag.StringVar(&cfg.CC, "cc", cfg.CC, "C compiler driver used to preprocess, assemble and link")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log each compilation stage")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log each compilation stage (shorthand)")

	flag.Parse()

	stage := driver.StageLink
	switch {
	case lex:
		stage = driver.StageLex
	case parse:
		stage = driver.StageParse
	case codegen:
		stage = driver.StageCodegen
	case assembly:
		stage = driver.StageAssembly
	}

	c := driver.NewCompiler(cfg.Target)
	if cfg.Verbose {
		c.Logger = log.New(os.Stderr, "tinycc: ", 0)
	}

	if flag.NArg() == 0 {
		if err := RunPrompt(c, stage); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
			log.Print(err)
			os.Exit(int(driver.ExitIO))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tc := driver.Toolchain{CC: cfg.CC, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := c.Build(ctx, tc, flag.Arg(0), stage, os.Stdout); err != nil {
		if _, located := diag.Locate(err); !located {
			log.Print(err)
		}
		os.Exit(int(driver.Classify(err)))
	}
}

// RunPrompt reads one program per line and prints the output of stage for it.
// A line of the form ":lex", ":parse", ":codegen" or ":asm" switches the stage;
// ":run" prints the exit status the program would return instead.
func RunPrompt(c *driver.Compiler, stage driver.Stage) error {
	if stage > driver.StageAssembly {
		stage = driver.StageAssembly
	}

	history := config.HistoryPath()
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	stages := map[string]driver.Stage{
		":lex":     driver.StageLex,
		":parse":   driver.StageParse,
		":codegen": driver.StageCodegen,
		":asm":     driver.StageAssembly,
	}
	run := false

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		command := strings.TrimSpace(input)
		if command == "" {
			continue
		}
		line.AppendHistory(input)

		if s, ok := stages[command]; ok {
			stage = s
			run = false
			continue
		}
		if command == ":run" {
			run = true
			continue
		}

		if run {
			status, err := c.Evaluate(input)
			if err != nil {
				c.Report(input, err)
				continue
			}
			fmt.Printf("exit status %d\n", status)
			continue
		}

		out, err := c.Run(input, stage)
		if err != nil {
			c.Report(input, err)
			continue
		}
		fmt.Print(out)
	}
}
