// Package metrics — счётчики Prometheus для магазина.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CartAdds           prometheus.Counter
	CartRemovals       prometheus.Counter
	Transitions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Handoffs           *prometheus.CounterVec
	Sessions           prometheus.Gauge
}

// New регистрирует счётчики в reg. Для /metrics по умолчанию передаётся
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CartAdds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "artshop", Subsystem: "cart", Name: "items_added_total",
			Help: "Line items added to carts.",
		}),
		CartRemovals: f.NewCounter(prometheus.CounterOpts{
			Namespace: "artshop", Subsystem: "cart", Name: "items_removed_total",
			Help: "Line items removed from carts.",
		}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "artshop", Subsystem: "checkout", Name: "transitions_total",
			Help: "Accepted checkout actions by action and resulting step.",
		}, []string{"action", "step"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "artshop", Subsystem: "checkout", Name: "validation_failures_total",
			Help: "Rejected submits by missing field.",
		}, []string{"field"}),
		Handoffs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "artshop", Subsystem: "checkout", Name: "handoffs_total",
			Help: "Orders handed off to an external channel.",
		}, []string{"channel"}),
		Sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "artshop", Name: "sessions",
			Help: "Chat sessions held in memory.",
		}),
	}
}
