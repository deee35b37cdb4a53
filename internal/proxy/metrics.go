package proxy

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ninja-fellowship/internal/domain"
	"ninja-fellowship/internal/httpx"
)

const (
	resultOK            = "ok"
	resultUpstreamError = "upstream_error"
	resultDecodeError   = "decode_error"
)

var (
	proxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Subsystem: "proxy",
		Name:      "requests_total",
		Help:      "Employee proxy requests broken down by result.",
	}, []string{"result"})

	proxyUpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "directory",
		Subsystem: "proxy",
		Name:      "upstream_latency_seconds",
		Help:      "Latency of upstream directory fetches.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"result"})
)

// classify maps a fetch error onto a metric label.
func classify(err error) string {
	if err == nil {
		return resultOK
	}
	var derr *domain.DecodeError
	if errors.As(err, &derr) {
		return resultDecodeError
	}
	return resultUpstreamError
}

func upstreamStatus(err error) int {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}
