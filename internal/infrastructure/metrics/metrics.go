package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the service counters. Each instance owns its registry so tests stay isolated.
type Metrics struct {
	Registry      *prometheus.Registry
	Submissions   *prometheus.CounterVec
	Redirects     prometheus.Counter
	Notifications *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	Orderbook     *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grynvault",
			Subsystem: "loan",
			Name:      "submissions_total",
			Help:      "Loan request submissions segmented by outcome.",
		}, []string{"outcome"}),
		Redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grynvault",
			Subsystem: "loan",
			Name:      "competitor_redirects_total",
			Help:      "Previews and submissions turned to the competitor path.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grynvault",
			Subsystem: "orderbook",
			Name:      "notifications_total",
			Help:      "Order acceptance notifications segmented by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grynvault",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests segmented by route, method and status.",
		}, []string{"route", "method", "status"}),
		Orderbook: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "grynvault",
			Subsystem: "orderbook",
			Name:      "orders",
			Help:      "Orders in the current orderbook snapshot by side.",
		}, []string{"type"}),
	}
	m.Registry.MustRegister(m.Submissions, m.Redirects, m.Notifications, m.HTTPRequests, m.Orderbook)
	return m
}

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeRedirect = "redirect"
	OutcomeError    = "error"
)
