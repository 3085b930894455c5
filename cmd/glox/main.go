// Command glox is the CLI driver for the bytecode compiler and VM: it can
// run a script, disassemble it, or drop into an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/glyphlang/glox/internal/applog"
	"github.com/glyphlang/glox/internal/glxconfig"
	"github.com/glyphlang/glox/internal/metrics"
	"github.com/glyphlang/glox/internal/tracing"
)

var (
	flagConfigPath  string
	flagLogLevel    string
	flagLogFormat   string
	flagMetricsAddr string
	flagTrace       bool
)

func main() {
	root := &cobra.Command{
		Use:   "glox",
		Short: "Compiler and virtual machine for a small bytecode-interpreted language",
		Long: heredoc.Doc(`
			glox compiles a Lox-like script to bytecode and runs it on a
			stack-based virtual machine.

			Use "glox run <file>" to execute a script, "glox repl" for an
			interactive session, or "glox dis <file>" to inspect the
			compiled bytecode without running it.
		`),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "text|json")
	root.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "address to serve Prometheus /metrics on, e.g. :9090")
	root.PersistentFlags().BoolVar(&flagTrace, "trace", false, "print a fetch-decode-execute trace before each instruction")

	root.AddCommand(newRunCmd(), newReplCmd(), newDisCmd(), newCompileCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (glxconfig.Config, error) {
	cfg, err := glxconfig.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if flagMetricsAddr != "" {
		cfg.MetricsAddr = flagMetricsAddr
	}
	if flagTrace {
		cfg.TraceEnabled = true
	}
	return cfg, nil
}

func newLogger(cfg glxconfig.Config) *applog.Logger {
	return applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func maybeServeMetrics(cfg glxconfig.Config, m *metrics.Metrics, log *applog.Logger) {
	if cfg.MetricsAddr == "" {
		return
	}
	go func() {
		mux := httpMux(m)
		if err := httpListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
}

func maybeInitTracing(cfg glxconfig.Config) (*tracing.Provider, error) {
	return tracing.Init(cfg.TraceEnabled)
}
