package activity

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_recorded_total",
			Help: "Count of recorded activity events by action.",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(EventsRecordedTotal)
}
