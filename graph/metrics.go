package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run-loop counters exposed for an embedding process to scrape (»DOMAIN
// STACK). The scheduler never starts an HTTP server itself — registration
// and exposition is the embedder's responsibility, mirroring how
// mdzesseis-log_capturer_go separates metric definitions from the HTTP
// handler that serves them.
var (
	iterationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracegraph_scheduler_iterations_total",
		Help: "Total number of scheduler run iterations.",
	})
	againTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracegraph_scheduler_again_total",
		Help: "Total number of AGAIN results observed by the scheduler.",
	})
	messagesDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracegraph_scheduler_messages_delivered_total",
		Help: "Total number of messages pulled through a sink, by message kind.",
	}, []string{"kind"})
)
