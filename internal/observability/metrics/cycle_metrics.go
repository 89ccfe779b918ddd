package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// CycleMetrics tracks billing cycle scheduler outcomes.
type CycleMetrics struct {
	cycleRuns        *prometheus.CounterVec
	paymentsCreated  prometheus.Counter
	announceFailures prometheus.Counter
}

var (
	cycleMetricsOnce sync.Once
	cycleMetrics     *CycleMetrics
)

// Cycle returns the process-wide cycle metrics.
func Cycle() *CycleMetrics {
	return CycleWithConfig(Config{})
}

// CycleWithConfig returns the process-wide cycle metrics, initializing
// them with the given config on first use.
func CycleWithConfig(cfg Config) *CycleMetrics {
	cycleMetricsOnce.Do(func() {
		cycleMetrics = newCycleMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return cycleMetrics
}

// ResetCycleMetricsForTest clears the singleton between tests.
func ResetCycleMetricsForTest() {
	cycleMetricsOnce = sync.Once{}
	cycleMetrics = nil
}

func newCycleMetrics(registerer prometheus.Registerer, cfg Config) *CycleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "uoobpremium"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	cycleRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "uoobpremium_billing_cycle_runs_total",
			Help:        "Billing cycle scheduler runs by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"}, // created | exists | raced | empty | error
	)

	paymentsCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "uoobpremium_payments_created_total",
			Help:        "Payment rows created by the scheduler.",
			ConstLabels: constLabels,
		},
	)

	announceFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "uoobpremium_announce_failures_total",
			Help:        "Webhook announcement sends that failed.",
			ConstLabels: constLabels,
		},
	)

	if err := registerer.Register(cycleRuns); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cycleRuns = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := registerer.Register(paymentsCreated); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			paymentsCreated = already.ExistingCollector.(prometheus.Counter)
		}
	}
	if err := registerer.Register(announceFailures); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			announceFailures = already.ExistingCollector.(prometheus.Counter)
		}
	}

	return &CycleMetrics{
		cycleRuns:        cycleRuns,
		paymentsCreated:  paymentsCreated,
		announceFailures: announceFailures,
	}
}

// ObserveRun records one scheduler run with its outcome label.
func (m *CycleMetrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.cycleRuns.WithLabelValues(outcome).Inc()
}

// AddPaymentsCreated records rows created by a cycle run.
func (m *CycleMetrics) AddPaymentsCreated(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.paymentsCreated.Add(float64(count))
}

// ObserveAnnounceFailure records a failed webhook send.
func (m *CycleMetrics) ObserveAnnounceFailure() {
	if m == nil {
		return
	}
	m.announceFailures.Inc()
}
