package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of a harness process.
// Each Metrics owns its registry so several can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	ScreenVisits *prometheus.CounterVec
	Actions      *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
	Cases        *prometheus.CounterVec
	CaseDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ScreenVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenwalk_screen_visits_total",
				Help: "Total number of screens entered by the navigator",
			},
			[]string{"screen"},
		),
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenwalk_actions_total",
				Help: "Total number of actions performed",
			},
			[]string{"action", "outcome"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screenwalk_step_duration_seconds",
				Help:    "Duration of primitive interactions, waits included",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"kind"},
		),
		Cases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenwalk_cases_total",
				Help: "Total number of test cases run",
			},
			[]string{"status"},
		),
		CaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screenwalk_case_duration_seconds",
				Help:    "Duration of test cases",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"case"},
		),
	}
	m.Registry.MustRegister(m.ScreenVisits, m.Actions, m.StepDuration, m.Cases, m.CaseDuration)
	return m
}

// Hooks records navigator events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnScreenEnter: func(_ context.Context, e *domain.ScreenEvent) {
			m.ScreenVisits.WithLabelValues(e.Screen.String()).Inc()
		},
		OnActionFinish: func(_ context.Context, e *domain.ActionEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Actions.WithLabelValues(e.Action.String(), outcome).Inc()
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.StepDuration.WithLabelValues(e.Step.Kind.String()).Observe(e.Duration.Seconds())
		},
	}
}

// ObserveCase records the outcome of a test case.
func (m *Metrics) ObserveCase(r domain.CaseResult) {
	m.Cases.WithLabelValues(string(r.Status)).Inc()
	m.CaseDuration.WithLabelValues(r.Name).Observe(r.Duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
