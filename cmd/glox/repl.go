package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyphlang/glox/internal/engine"
	"github.com/glyphlang/glox/internal/metrics"
	"github.com/glyphlang/glox/internal/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			m := metrics.New()
			maybeServeMetrics(cfg, m, log)
			tp, err := maybeInitTracing(cfg)
			if err != nil {
				return err
			}
			defer tp.Shutdown(context.Background())

			eng := engine.New(cfg, log, m, tp)
			return repl.New(eng, os.Stderr).Run(cmd.Context())
		},
	}
}
