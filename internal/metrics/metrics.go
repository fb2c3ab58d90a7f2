// Package metrics exposes casino activity as Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/notify"
)

const (
	namespace = "casino"

	LabelGame   = "game"
	LabelResult = "result"
	LabelEvent  = "event"
)

// Metrics holds the collectors registered for one session.
type Metrics struct {
	gatherer prometheus.Gatherer

	Rounds  *prometheus.CounterVec
	Wagered *prometheus.CounterVec
	Paid    *prometheus.CounterVec
	Events  *prometheus.CounterVec
	Balance prometheus.Gauge
}

// New registers the collectors on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		Rounds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rounds_total",
				Help:      "Settled rounds by game and result.",
			},
			[]string{LabelGame, LabelResult},
		),
		Wagered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wagered_credits_total",
				Help:      "Credits staked on settled rounds.",
			},
			[]string{LabelGame},
		),
		Paid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paid_credits_total",
				Help:      "Credits paid out, stake returns included.",
			},
			[]string{LabelGame},
		),
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Notification events fired.",
			},
			[]string{LabelEvent},
		),
		Balance: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "balance_credits",
				Help:      "Current credits balance.",
			},
		),
	}
}

// ObserveSettlement records a settled round.
func (m *Metrics) ObserveSettlement(s games.Settlement) {
	game := string(s.Game)
	m.Rounds.WithLabelValues(game, s.Result.String()).Inc()
	m.Wagered.WithLabelValues(game).Add(float64(s.Stake))
	m.Paid.WithLabelValues(game).Add(float64(s.Payout))
}

// SetBalance publishes the current balance.
func (m *Metrics) SetBalance(balance int) {
	m.Balance.Set(float64(balance))
}

// Notify counts notification events, so Metrics can sit on the event fan-out.
func (m *Metrics) Notify(e notify.Event) {
	m.Events.WithLabelValues(e.String()).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
