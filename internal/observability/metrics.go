package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeRestart = "restart"
)

// Metrics holds the pipeline collectors on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	attempts      *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	questions     prometheus.Counter
	exhausted     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kgquiz",
			Name:      "pipeline_attempts_total",
			Help:      "Pipeline attempts by outcome.",
		}, []string{"outcome"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kgquiz",
			Name:      "stage_failures_total",
			Help:      "Failed pipeline attempts by the stage that failed.",
		}, []string{"stage"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kgquiz",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"stage"}),
		questions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kgquiz",
			Name:      "questions_generated_total",
			Help:      "Questions generated successfully.",
		}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kgquiz",
			Name:      "generations_exhausted_total",
			Help:      "Requests that ran out of attempts.",
		}),
	}
	m.registry.MustRegister(
		m.attempts,
		m.stageFailures,
		m.stageDuration,
		m.questions,
		m.exhausted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry is served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) AttemptFailed(stage string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(OutcomeRestart).Inc()
	m.stageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) AttemptSucceeded() {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(OutcomeSuccess).Inc()
	m.questions.Inc()
}

func (m *Metrics) Exhausted() {
	if m == nil {
		return
	}
	m.exhausted.Inc()
}
