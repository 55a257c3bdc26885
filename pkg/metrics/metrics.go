// Package metrics provides Prometheus metrics for the score tracker.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns the tracker's metric collectors on a single registry.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	gamesStarted       prometheus.Counter
	gamesCompleted     prometheus.Counter
	roundsCompleted    prometheus.Counter
	validationFailures prometheus.Counter
	saveFailures       prometheus.Counter
	activeGames        prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry sets the Prometheus registry to register collectors on.
// Tests use this to avoid the process-global default registry.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "callbreak",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.gamesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_started_total",
		Help:      "Number of games started or restarted.",
	})
	m.gamesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_completed_total",
		Help:      "Number of games completed, including early ends.",
	})
	m.roundsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rounds_completed_total",
		Help:      "Number of rounds scored.",
	})
	m.validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "validation_failures_total",
		Help:      "Number of rejected call or result entries.",
	})
	m.saveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "save_failures_total",
		Help:      "Number of failed game persistence writes.",
	})
	m.activeGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "active_games",
		Help:      "Whether a game is currently in progress (0 or 1).",
	})

	m.registry.MustRegister(
		m.gamesStarted,
		m.gamesCompleted,
		m.roundsCompleted,
		m.validationFailures,
		m.saveFailures,
		m.activeGames,
	)
	return m
}

// RecordGameStarted increments the started-games counter.
func (m *Manager) RecordGameStarted() { m.gamesStarted.Inc() }

// RecordGameCompleted increments the completed-games counter.
func (m *Manager) RecordGameCompleted() { m.gamesCompleted.Inc() }

// RecordRoundCompleted increments the scored-rounds counter.
func (m *Manager) RecordRoundCompleted() { m.roundsCompleted.Inc() }

// RecordValidationFailure increments the rejected-input counter.
func (m *Manager) RecordValidationFailure() { m.validationFailures.Inc() }

// RecordSaveFailure increments the failed-save counter.
func (m *Manager) RecordSaveFailure() { m.saveFailures.Inc() }

// UpdateActiveGames sets the active-game gauge.
func (m *Manager) UpdateActiveGames(n int) { m.activeGames.Set(float64(n)) }

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide manager, creating it on first use.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// Package-level helpers over the default manager.

func RecordGameStarted()       { Default().RecordGameStarted() }
func RecordGameCompleted()     { Default().RecordGameCompleted() }
func RecordRoundCompleted()    { Default().RecordRoundCompleted() }
func RecordValidationFailure() { Default().RecordValidationFailure() }
func RecordSaveFailure()       { Default().RecordSaveFailure() }
func UpdateActiveGames(n int)  { Default().UpdateActiveGames(n) }
