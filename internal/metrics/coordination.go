package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/npcready/internal/orchestration"
)

const namespace = "npcready"

// Coordination implements orchestration.Observer and exposes the collected
// series on its own registry, so several instances can coexist in tests.
type Coordination struct {
	registry *prometheus.Registry

	attempts        *prometheus.CounterVec
	outcomes        *prometheus.CounterVec
	signals         *prometheus.CounterVec
	pending         *prometheus.GaugeVec
	attemptDuration *prometheus.HistogramVec
	ready           *prometheus.GaugeVec
}

var _ orchestration.Observer = (*Coordination)(nil)

// NewCoordination creates the collectors and registers them, together with
// the Go runtime and process collectors, on a fresh registry.
func NewCoordination() *Coordination {
	m := &Coordination{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Readiness coordination attempts started.",
		}, []string{"entity"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Readiness attempts finished, by outcome.",
		}, []string{"entity", "outcome"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Readiness signals received, by subsystem and disposition.",
		}, []string{"entity", "subsystem", "disposition"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_subsystems",
			Help:      "Subsystems that have not reported in the current attempt.",
		}, []string{"entity"}),
		attemptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempt_duration_seconds",
			Help:      "Time from start to outcome of a readiness attempt.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"entity", "outcome"}),
		ready: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entity_ready",
			Help:      "1 when the latest attempt for the entity succeeded, 0 otherwise.",
		}, []string{"entity"}),
	}
	m.registry.MustRegister(
		m.attempts, m.outcomes, m.signals, m.pending, m.attemptDuration, m.ready,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// AttemptStarted records a new attempt and resets the pending gauge.
func (m *Coordination) AttemptStarted(entity string, subsystems int) {
	m.attempts.WithLabelValues(entity).Inc()
	m.pending.WithLabelValues(entity).Set(float64(subsystems))
	m.ready.WithLabelValues(entity).Set(0)
}

// SignalObserved counts a signal; accepted successes also lower the pending gauge.
func (m *Coordination) SignalObserved(entity, subsystem string, d orchestration.Disposition) {
	m.signals.WithLabelValues(entity, subsystem, string(d)).Inc()
	if d == orchestration.DispositionReady {
		m.pending.WithLabelValues(entity).Dec()
	}
}

// AttemptFinished records the outcome and its duration.
func (m *Coordination) AttemptFinished(entity string, o orchestration.Outcome) {
	kind := o.Kind.String()
	m.outcomes.WithLabelValues(entity, kind).Inc()
	m.attemptDuration.WithLabelValues(entity, kind).Observe(o.Elapsed.Seconds())
	if o.Success() {
		m.ready.WithLabelValues(entity).Set(1)
		m.pending.WithLabelValues(entity).Set(0)
	}
}

// Registry returns the underlying registry, for callers that add collectors.
func (m *Coordination) Registry() *prometheus.Registry { return m.registry }
