package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyphlang/glox/internal/glxerrors"
	"github.com/glyphlang/glox/internal/lang/compiler"
)

func newCompileCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a script and print a disassembly summary (no binary output format is defined)",
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

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			chunk.Disassemble(out, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the disassembly summary to this path instead of stdout")
	return cmd
}
