// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TreeEditsTotal counts comment tree edits by mode and outcome
	// (applied, duplicate, not_found, invalid).
	TreeEditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sphere",
			Subsystem: "comments",
			Name:      "tree_edits_total",
			Help:      "Comment tree edits by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	CommentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sphere",
			Subsystem: "comments",
			Name:      "created_total",
			Help:      "Comments persisted, top-level or reply",
		},
		[]string{"kind"},
	)

	ChatMessagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sphere",
			Subsystem: "chat",
			Name:      "messages_sent_total",
			Help:      "Chat messages accepted from senders",
		},
	)

	ChatMessagesReadTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sphere",
			Subsystem: "chat",
			Name:      "messages_marked_read_total",
			Help:      "Chat messages flipped from unread to read",
		},
	)

	// ChatSessions is the number of chat stores held in memory.
	ChatSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sphere",
			Subsystem: "chat",
			Name:      "sessions",
			Help:      "Per-user chat sessions currently cached",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sphere",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected with 429 by scope",
		},
		[]string{"scope"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sphere",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "route", "status"},
	)
)
