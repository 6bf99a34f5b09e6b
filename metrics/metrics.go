// Package metrics exposes the process Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts executed turns by final agent and outcome.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voyagent",
		Name:      "turns_total",
		Help:      "Turns executed, labeled by final agent and outcome.",
	}, []string{"agent", "outcome"})

	// TransfersTotal counts agent-to-agent transfers.
	TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voyagent",
		Name:      "transfers_total",
		Help:      "Agent transfers, labeled by source and target agent.",
	}, []string{"from", "to"})

	// BackendRetriesTotal counts retried backend calls.
	BackendRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voyagent",
		Name:      "backend_retries_total",
		Help:      "Backend completions that were retried after a failure.",
	})

	// SessionsEvictedTotal counts sessions removed by the idle GC.
	SessionsEvictedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voyagent",
		Name:      "sessions_evicted_total",
		Help:      "Sessions evicted after exceeding the idle TTL.",
	})

	// ActiveSessions tracks the current live session count.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "voyagent",
		Name:      "active_sessions",
		Help:      "Live sessions currently held in memory.",
	})
)
