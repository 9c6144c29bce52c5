package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream counters exposed on /-/metrics.
var (
	upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "askkodiak",
		Name:      "upstream_errors_total",
		Help:      "Failed Ask Kodiak responses by HTTP status.",
	}, []string{"status"})

	pipelineRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "askkodiak",
		Name:      "pipeline_rejections_total",
		Help:      "Requests not sent because a pipeline step failed.",
	}, []string{"step"})
)

// RecordUpstreamError counts a failed upstream response.
func RecordUpstreamError(status int) {
	upstreamErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordPipelineRejection counts a request dropped by a pipeline step.
func RecordPipelineRejection(step string) {
	pipelineRejections.WithLabelValues(step).Inc()
}
