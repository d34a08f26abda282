package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch results used as the "result" label.
const (
	ResultOK           = "ok"
	ResultNetworkError = "network_error"
	ResultTimeout      = "timeout"
	ResultStatusError  = "status_error"
)

// Collectors holds the fetch metrics of one event source.
type Collectors struct {
	FetchTotal     *prometheus.CounterVec
	FetchDuration  prometheus.Histogram
	DroppedRecords prometheus.Counter
}

// New creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sched",
			Name:      "fetch_total",
			Help:      "Event listing requests by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sched",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of event listing requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		DroppedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sched",
			Name:      "dropped_records_total",
			Help:      "Upstream event records dropped because they could not be normalized.",
		}),
	}

	if reg != nil {
		reg.MustRegister(c.FetchTotal, c.FetchDuration, c.DroppedRecords)
	}

	return c
}
