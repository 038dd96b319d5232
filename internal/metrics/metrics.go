package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "tipping"

type Metrics struct {
	TipsSubmitted    prometheus.Counter
	ResultsRecorded  *prometheus.CounterVec
	FixturesImported *prometheus.CounterVec
	FeedRequests     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		TipsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tips_submitted_total",
			Help:      "Tips stored, counting replaced picks.",
		}),
		ResultsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_recorded_total",
			Help:      "Match results recorded, by outcome kind.",
		}, []string{"kind"}),
		FixturesImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_imported_total",
			Help:      "Rows upserted from the fixture feed.",
		}, []string{"entity"}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Requests made to the fixture feed, by query and status.",
		}, []string{"query", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(
		m.TipsSubmitted,
		m.ResultsRecorded,
		m.FixturesImported,
		m.FeedRequests,
		m.RequestDuration,
	)
	return m
}

// Nop returns metrics registered on a throwaway registry, for tests and the CLI.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
