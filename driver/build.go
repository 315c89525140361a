package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Toolchain runs the external C compiler driver used for preprocessing, assembling and linking.
type Toolchain struct {
	CC     string
	Stdout io.Writer
	Stderr io.Writer
}

type ToolError struct {
	Args []string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (t Toolchain) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, t.CC, args...)
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Args: append([]string{t.CC}, args...), Err: err}
	}
	return nil
}

// Preprocess expands input into output with the C preprocessor.
func (t Toolchain) Preprocess(ctx context.Context, input, output string) error {
	return t.run(ctx, "-E", "-P", input, "-o", output)
}

// AssembleAndLink turns an assembly file into an executable.
func (t Toolchain) AssembleAndLink(ctx context.Context, input, output string) error {
	return t.run(ctx, input, "-o", output)
}

// replaceExt swaps the extension of path for ext. When that would name path
// itself or a directory, ext (or ".out") is appended to path instead.
func replaceExt(path, ext string) string {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ext
	if out != path && out != "" && !os.IsPathSeparator(out[len(out)-1]) {
		return out
	}
	if ext == "" {
		ext = ".out"
	}
	return path + ext
}

// PreprocessedPath, AssemblyPath and ExecutablePath name the files derived from a source path.
func PreprocessedPath(path string) string { return replaceExt(path, ".i") }
func AssemblyPath(path string) string     { return replaceExt(path, ".s") }
func ExecutablePath(path string) string   { return replaceExt(path, "") }

// Build compiles the file at path up to stage. Dumps from the stages before
// StageAssembly go to stdout. Located errors are reported to c.Stderr before
// Build returns them.
func (c *Compiler) Build(ctx context.Context, tc Toolchain, path string, stage Stage, stdout io.Writer) (err error) {
	pre := PreprocessedPath(path)
	if err := tc.Preprocess(ctx, path, pre); err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}
	defer func() {
		err = errors.Join(err, removeTemp(pre))
	}()

	bytes, err := os.ReadFile(pre)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	source := string(bytes)

	out, err := c.Run(source, stage)
	if err != nil {
		c.Report(source, err)
		return err
	}

	if stage < StageAssembly {
		_, err := io.WriteString(stdout, out)
		return err
	}

	asmPath := AssemblyPath(path)
	if err := os.WriteFile(asmPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	c.Logger.Printf("wrote %s", asmPath)
	if stage == StageAssembly {
		return nil
	}
	defer func() {
		err = errors.Join(err, removeTemp(asmPath))
	}()

	if err := tc.AssembleAndLink(ctx, asmPath, ExecutablePath(path)); err != nil {
		return fmt.Errorf("link: %w", err)
	}
	c.Logger.Printf("wrote %s", ExecutablePath(path))

	return nil
}

func removeTemp(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
