// Package repl implements the interactive read-eval-print loop: prompt,
// read one line, interpret against a persistent engine, repeat until EOF.
package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/glyphlang/glox/internal/engine"
	"github.com/glyphlang/glox/internal/glxerrors"
)

const prompt = "glox> "

// REPL drives readline against a persistent Engine.
type REPL struct {
	eng *engine.Engine
	out io.Writer
}

// New returns a REPL bound to eng, writing diagnostics to out.
func New(eng *engine.Engine, out io.Writer) *REPL {
	return &REPL{eng: eng, out: out}
}

// Run reads lines until EOF (Ctrl-D), interpreting each one. An interrupt
// (Ctrl-C) discards the current line and the loop goes on. A runtime or
// compile error on one line does not end the session.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		if ierr := r.eng.Interpret(ctx, line); ierr != nil {
			fmt.Fprintln(r.out, glxerrors.Format(ierr))
		}
	}
}
