package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	wizardTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdee",
			Name:      "wizard_transitions_total",
			Help:      "Wizard actions by action name and outcome (ok or error code).",
		},
		[]string{"action", "outcome"},
	)

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdee",
			Name:      "calculations_total",
			Help:      "TDEE calculations by outcome (ok or error code).",
		},
		[]string{"outcome"},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tdee",
			Name:      "wizard_sessions_active",
			Help:      "In-memory wizard sessions currently open.",
		},
	)
)

// Register registers metrics with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(wizardTransitions, calculations, sessionsActive)
	})
}

// Outcome labels a result: "ok" for nil, otherwise the error code or "error".
func Outcome(code string, err error) string {
	if err == nil {
		return "ok"
	}
	if code == "" {
		return "error"
	}
	return code
}

func IncTransition(action, outcome string) {
	wizardTransitions.WithLabelValues(action, outcome).Inc()
}

func IncCalculation(outcome string) {
	calculations.WithLabelValues(outcome).Inc()
}

func SetSessionsActive(n int) {
	sessionsActive.Set(float64(n))
}
