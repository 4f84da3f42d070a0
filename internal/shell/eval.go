// Package shell evaluates PKGBUILD array variables with an embedded
// shell-compatible interpreter.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Evaluator sources a PKGBUILD and prints each element of a named array
// variable on its own line, using mvdan.cc/sh instead of spawning bash.
type Evaluator struct{}

func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the elements of the given array variable. The caller
// gets exactly the lines the echo loop emitted; a non-zero exit of the
// sourced script is an error.
func (e *Evaluator) Evaluate(path, variable string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	script := fmt.Sprintf("source %q\nfor x in ${%s[@]}; do echo \"$x\"; done\n", abs, variable)
	log.Debug("evaluating array variable", "variable", variable, "path", abs)

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "extract")
	if err != nil {
		return nil, fmt.Errorf("parsing extraction script: %w", err)
	}

	var stdout bytes.Buffer
	runner, err := interp.New(
		interp.Dir(filepath.Dir(abs)),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, &stdout, io.Discard),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}

	if err := runner.Run(context.Background(), prog); err != nil {
		return nil, fmt.Errorf("sourcing %s: %w", abs, err)
	}

	out := stdout.String()
	if out == "" {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	return lines, nil
}
