package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/payflow-labs/payflow/internal/resilience"
)

// Metrics exposes the Prometheus instruments for money movement. It also
// observes circuit breaker transitions; observers never influence breaker
// decisions.
type Metrics struct {
	transfersTotal      *prometheus.CounterVec
	transferAmountCents prometheus.Counter
	replaysTotal        prometheus.Counter
	breakerState        *prometheus.GaugeVec
	breakerTransitions  *prometheus.CounterVec
	archivedRecords     *prometheus.CounterVec
}

// New registers the instruments on the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payflow_transfers_total",
			Help: "Transfers processed, labeled by outcome.",
		}, []string{"outcome"}),
		transferAmountCents: factory.NewCounter(prometheus.CounterOpts{
			Name: "payflow_transfer_amount_cents_total",
			Help: "Total cents moved by completed transfers.",
		}),
		replaysTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "payflow_transfer_replays_total",
			Help: "Duplicate transfer intents answered from a prior result.",
		}),
		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "payflow_breaker_state",
			Help: "Circuit breaker state per service (0 closed, 1 open, 2 half-open).",
		}, []string{"service"}),
		breakerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payflow_breaker_transitions_total",
			Help: "Circuit breaker state transitions per service.",
		}, []string{"service", "to"}),
		archivedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payflow_archived_records_total",
			Help: "Records relocated to the warm tier, labeled by table.",
		}, []string{"table"}),
	}
}

var _ resilience.Observer = (*Metrics)(nil)

// StateChanged records a circuit breaker transition
func (m *Metrics) StateChanged(service string, from, to resilience.State) {
	m.breakerState.WithLabelValues(service).Set(stateValue(to))
	m.breakerTransitions.WithLabelValues(service, to.String()).Inc()
}

// TransferCompleted records a committed transfer
func (m *Metrics) TransferCompleted(amountCents int64) {
	m.transfersTotal.WithLabelValues("completed").Inc()
	m.transferAmountCents.Add(float64(amountCents))
}

// TransferFailed records a failed transfer intent
func (m *Metrics) TransferFailed() {
	m.transfersTotal.WithLabelValues("failed").Inc()
}

// TransferReplayed records an idempotent replay
func (m *Metrics) TransferReplayed() {
	m.replaysTotal.Inc()
}

// RecordsArchived records warm-tier relocations for one table
func (m *Metrics) RecordsArchived(table string, count int) {
	m.archivedRecords.WithLabelValues(table).Add(float64(count))
}

func stateValue(s resilience.State) float64 {
	switch s {
	case resilience.StateOpen:
		return 1
	case resilience.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
