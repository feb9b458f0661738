package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation generation HTTP handler
	RecommendGenerateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_generate_latency_seconds",
		Help:    "Latency of recommendation generation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation generation runs served
	RecommendGenerateRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_generate_requests_total",
		Help: "Total number of recommendation generation requests",
	})

	// Report requests by report kind
	ReportRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_requests_total",
		Help: "Total report requests by report kind",
	}, []string{"report"})
)

func Init() {
	prometheus.MustRegister(
		RecommendGenerateLatency,
		RecommendGenerateRequests,
		ReportRequestsTotal,
	)
}
