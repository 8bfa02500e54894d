// Package metrics declares the module's Prometheus collectors, registered
// on the default registry at package init. The attest verifiers record
// through RecordVerify; the tunnel server increments the session,
// handshake and WebSocket collectors directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qvl_verify_total",
		Help: "Quote verification attempts by family and outcome.",
	}, []string{"family", "outcome"})

	VerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qvl_verify_duration_seconds",
		Help:    "Quote verification latency by family.",
		Buckets: prometheus.DefBuckets,
	}, []string{"family"})

	TunnelSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tunnel_sessions_active",
		Help: "Currently open tunnel sessions.",
	})

	TunnelHandshakeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunnel_handshake_total",
		Help: "Tunnel handshake attempts by outcome.",
	}, []string{"outcome"})

	TunnelWSConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tunnel_ws_connections_active",
		Help: "Currently open virtual WebSocket connections.",
	})
)

// RecordVerify records the outcome of a single verification call.
func RecordVerify(family, outcome string, seconds float64) {
	VerifyTotal.WithLabelValues(family, outcome).Inc()
	VerifyDuration.WithLabelValues(family).Observe(seconds)
}
