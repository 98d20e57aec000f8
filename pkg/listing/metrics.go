package listing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iam",
			Subsystem: "listing",
			Name:      "fetch_total",
			Help:      "Total number of list fetches by result",
		},
		[]string{"listing", "result"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iam",
			Subsystem: "listing",
			Name:      "fetch_duration_seconds",
			Help:      "List fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"listing"},
	)

	staleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iam",
			Subsystem: "listing",
			Name:      "stale_responses_total",
			Help:      "Fetch responses dropped because a newer request superseded them",
		},
		[]string{"listing"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iam",
			Subsystem: "listing",
			Name:      "cache_lookups_total",
			Help:      "Cached fetcher lookups by outcome",
		},
		[]string{"listing", "outcome"},
	)
)
