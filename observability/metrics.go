package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Subsystem: "messages",
			Name:      "sent_total",
			Help:      "Messages accepted by the message service",
		},
		[]string{"sender"},
	)

	MessagesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Subsystem: "messages",
			Name:      "rejected_total",
			Help:      "Messages refused by validation or the store",
		},
		[]string{"reason"},
	)

	RelayDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Subsystem: "relay",
			Name:      "deliveries_total",
			Help:      "Realtime events pushed to connections",
		},
		[]string{"event", "status"},
	)

	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "support_chat",
			Subsystem: "relay",
			Name:      "connections_active",
			Help:      "Connections currently joined to a room",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support_chat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "support_chat",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)
)
