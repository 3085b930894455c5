// Package metrics exposes Prometheus collectors for the compile/execute
// pipeline. A nil *Metrics is a valid no-op recorder so the VM's hot loop
// pays no cost when metrics are disabled.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glyphlang/glox/internal/lang/bytecode"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	compileTotal     *prometheus.CounterVec
	compileDuration  prometheus.Histogram
	executeDuration  prometheus.Histogram
	instructionsTot  *prometheus.CounterVec
	stackDepth       prometheus.Gauge
	registry         *prometheus.Registry
}

// DefaultBuckets are latency buckets tuned for sub-millisecond compiles.
var DefaultBuckets = []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// New registers and returns a fresh Metrics instance.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}

	m.compileTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glox", Name: "compile_total", Help: "Total compile attempts by result.",
	}, []string{"result"})

	m.compileDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "glox", Name: "compile_duration_seconds", Help: "Compile latency.",
		Buckets: DefaultBuckets,
	})

	m.executeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "glox", Name: "execute_duration_seconds", Help: "Execute latency.",
		Buckets: DefaultBuckets,
	})

	m.instructionsTot = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glox", Name: "vm_instructions_total", Help: "Executed instructions by opcode.",
	}, []string{"opcode"})

	m.stackDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "glox", Name: "vm_stack_depth", Help: "Current VM value stack depth.",
	})

	registry.MustRegister(m.compileTotal, m.compileDuration, m.executeDuration, m.instructionsTot, m.stackDepth)
	return m
}

// Handler serves the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCompile records one compile attempt's outcome and duration.
func (m *Metrics) ObserveCompile(ok bool, seconds float64) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.compileTotal.WithLabelValues(result).Inc()
	m.compileDuration.Observe(seconds)
}

// ObserveExecute records one execute phase's duration.
func (m *Metrics) ObserveExecute(seconds float64) {
	if m == nil {
		return
	}
	m.executeDuration.Observe(seconds)
}

// InstructionHook returns a vm.InstrHook bound to this recorder.
func (m *Metrics) InstructionHook() func(op bytecode.OpCode) {
	if m == nil {
		return nil
	}
	return func(op bytecode.OpCode) {
		m.instructionsTot.WithLabelValues(op.String()).Inc()
	}
}

// SetStackDepth updates the stack-depth gauge.
func (m *Metrics) SetStackDepth(depth int) {
	if m == nil {
		return
	}
	m.stackDepth.Set(float64(depth))
}

// DepthHook returns a vm.DepthHook bound to this recorder.
func (m *Metrics) DepthHook() func(depth int) {
	if m == nil {
		return nil
	}
	return m.SetStackDepth
}
