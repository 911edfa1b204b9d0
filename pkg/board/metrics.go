package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	threadsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_threads_created_total",
		Help: "Threads accepted and persisted.",
	})
	repliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadb_replies_created_total",
		Help: "Replies accepted and persisted.",
	})
)
