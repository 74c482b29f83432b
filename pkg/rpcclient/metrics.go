package rpcclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics used in monitoring node interaction.
var (
	rpcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC calls made by the client",
			Name:      "rpc_calls_total",
			Namespace: "chain33",
			Subsystem: "client",
		},
		[]string{"method", "status"},
	)

	rpcCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "RPC call round trip duration",
			Name:      "rpc_call_duration_seconds",
			Namespace: "chain33",
			Subsystem: "client",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(
		rpcCalls,
		rpcCallDuration,
	)
}

func observeRequest(method string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	rpcCalls.WithLabelValues(method, status).Inc()
	rpcCallDuration.WithLabelValues(method).Observe(took.Seconds())
}
