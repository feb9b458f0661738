package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Count of recommendation generation runs by outcome.",
		},
		[]string{"outcome"},
	)

	RecommendationRowsWritten = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_rows_written",
			Help:    "Rows persisted per generation run.",
			Buckets: []float64{0, 1, 5, 10, 20},
		},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsGeneratedTotal, RecommendationRowsWritten)
}
