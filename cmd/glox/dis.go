package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyphlang/glox/internal/glxerrors"
	"github.com/glyphlang/glox/internal/lang/compiler"
)

func newDisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dis <file>",
		Short: "Compile a script and print its bytecode disassembly without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			chunk, err := compiler.New().Compile(string(src))
			if err != nil {
				fmt.Fprintln(os.Stderr, glxerrors.Format(err))
				os.Exit(65)
			}
			chunk.Disassemble(os.Stdout, args[0])
			return nil
		},
	}
}
