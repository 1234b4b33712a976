// Package metrics defines the Prometheus instruments the wallet exposes
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the wallet's counters. All instruments are registered
// on the Registerer passed to New, so tests can use a private registry.
type Metrics struct {
	registrations *prometheus.CounterVec
	deposits      prometheus.Counter
	transfers     prometheus.Counter
	breakerStates *prometheus.CounterVec
}

// New creates and registers the wallet metrics. Passing
// prometheus.DefaultRegisterer wires them to the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "registrations_total",
			Help:      "Registration saga outcomes by terminal state.",
		}, []string{"outcome"}),
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "deposits_total",
			Help:      "Deposits registered successfully.",
		}),
		transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "transfers_total",
			Help:      "Transfers completed successfully.",
		}),
		breakerStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions by operation.",
		}, []string{"operation", "to"}),
	}

	reg.MustRegister(m.registrations, m.deposits, m.transfers, m.breakerStates)
	return m
}

// RegistrationOutcome counts one finished registration saga. outcome is
// the terminal state name.
func (m *Metrics) RegistrationOutcome(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

// DepositRegistered counts one successful deposit.
func (m *Metrics) DepositRegistered() {
	m.deposits.Inc()
}

// TransferCompleted counts one successful transfer.
func (m *Metrics) TransferCompleted() {
	m.transfers.Inc()
}

// BreakerTransition counts one circuit breaker state change. Plugs into
// resilience.WithStateChangeFunc.
func (m *Metrics) BreakerTransition(operation, from, to string) {
	m.breakerStates.WithLabelValues(operation, to).Inc()
}
