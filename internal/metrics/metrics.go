// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in a binary is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Cumulative number of posts created through the API.",
		})

	PostsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_deleted_total",
			Help: "Cumulative number of posts deleted through the API.",
		})

	ListQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "post_list_queries_total",
			Help: "Cumulative number of list queries served.",
		})

	ImportRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_records_total",
			Help: "Per-outcome record counts across import runs.",
		},
		[]string{"outcome"}, // success, duplicate, error
	)

	ImportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_runs_total",
			Help: "Import runs by terminal state.",
		},
		[]string{"state"}, // committed, rolled_back
	)
)

func init() {
	prometheus.MustRegister(
		PostsCreated,
		PostsDeleted,
		ListQueries,
		ImportRecords,
		ImportRuns,
	)
}
