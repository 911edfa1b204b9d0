package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_store_gets_total",
		Help: "Successful point reads against the store.",
	})
	getFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_store_get_failures_total",
		Help: "Point reads that failed with an engine error (not-found excluded).",
	})
	puts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_store_puts_total",
		Help: "Successful synced writes against the store.",
	})
	putFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_store_put_failures_total",
		Help: "Writes that failed with an engine error.",
	})
	scans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_store_prefix_scans_total",
		Help: "Prefix scans (listings and id-allocation counts).",
	})
)
