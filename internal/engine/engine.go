// Package engine ties the VM together with the ambient stack (logging,
// metrics, tracing) so that one call to Interpret is one observable unit of
// work, the way the teacher's request pipeline treats one HTTP request.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glyphlang/glox/internal/applog"
	"github.com/glyphlang/glox/internal/glxconfig"
	"github.com/glyphlang/glox/internal/lang/compiler"
	"github.com/glyphlang/glox/internal/lang/vm"
	"github.com/glyphlang/glox/internal/metrics"
	"github.com/glyphlang/glox/internal/tracing"
)

// Engine is a persistent VM plus its ambient stack handles.
type Engine struct {
	VM      *vm.VM
	Logger  *applog.Logger
	Metrics *metrics.Metrics
	Tracer  *tracing.Provider
	cfg     glxconfig.Config
}

// New builds an Engine from cfg. Metrics are created but only served over
// HTTP by the caller when cfg.MetricsAddr is set.
func New(cfg glxconfig.Config, logger *applog.Logger, m *metrics.Metrics, tp *tracing.Provider) *Engine {
	v := vm.New()
	v.Trace = cfg.TraceEnabled
	if m != nil {
		v.Hook = m.InstructionHook()
		v.DepthHook = m.DepthHook()
	}
	return &Engine{VM: v, Logger: logger, Metrics: m, Tracer: tp, cfg: cfg}
}

// Interpret runs source through the compile+execute pipeline, emitting one
// log line, two separately-timed metric observations, and one trace span
// (with compile and execute children) per call. When compilation fails, only
// the compile observation and the compile child span are made.
func (e *Engine) Interpret(ctx context.Context, source string) error {
	execID := uuid.NewString()
	log := e.Logger.WithExecution(execID)

	tr := e.Tracer.Tracer()
	ctx, rootSpan := tracing.StartInterpret(ctx, tr, execID)
	defer rootSpan.End()

	compileStart := time.Now()
	_, compileSpan := tracing.StartCompile(ctx, tr)
	chunk, err := compiler.New().Compile(source)
	compileSpan.End()
	compileElapsed := time.Since(compileStart).Seconds()

	if e.Metrics != nil {
		e.Metrics.ObserveCompile(err == nil, compileElapsed)
	}
	if err != nil {
		log.WithError(err).Warn("interpret failed")
		return err
	}

	executeStart := time.Now()
	_, executeSpan := tracing.StartExecute(ctx, tr)
	err = e.VM.Run(chunk)
	executeSpan.End()
	executeElapsed := time.Since(executeStart).Seconds()

	if e.Metrics != nil {
		e.Metrics.ObserveExecute(executeElapsed)
	}

	if err != nil {
		log.WithError(err).Warn("interpret failed")
		return err
	}
	log.WithField("compile_seconds", compileElapsed).
		WithField("execute_seconds", executeElapsed).
		Info("interpret ok")
	return nil
}
