package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/glyphlang/glox/internal/engine"
	"github.com/glyphlang/glox/internal/glxerrors"
	"github.com/glyphlang/glox/internal/metrics"
)

var flagWatch bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compile and execute a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
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

			if err := runFile(cmd.Context(), eng, path); err != nil {
				fmt.Fprintln(os.Stderr, glxerrors.Format(err))
				os.Exit(70)
			}

			if !flagWatch {
				return nil
			}
			return watchAndRerun(cmd.Context(), eng, path)
		},
	}
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "recompile and rerun the script whenever it changes")
	return cmd
}

func runFile(ctx context.Context, eng *engine.Engine, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return eng.Interpret(ctx, string(src))
}

func watchAndRerun(ctx context.Context, eng *engine.Engine, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := runFile(ctx, eng, path); err != nil {
				fmt.Fprintln(os.Stderr, glxerrors.Format(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
