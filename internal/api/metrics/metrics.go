// Package metrics defines the custom Prometheus metrics for the tasks API.
// Collectors are registered with the default registry on package init via
// promauto and exposed on /metrics next to the echoprometheus request metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smarttodo"

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreCommitsTotal counts document commits.
// Labels:
//   - backend: "file", "mongo", "redis" or "memory"
//   - result: "ok" or "error"
var StoreCommitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_commits_total",
		Help:      "Total number of document commits, by backend and result.",
	},
	[]string{"backend", "result"},
)

// StoreCommitDuration measures encode + write time of a whole-document commit.
// Label:
//   - backend: the persistence medium
var StoreCommitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_commit_duration_seconds",
		Help:      "Duration of a whole-document commit.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)

// StoreDocumentBytes tracks the size of the last committed document.
var StoreDocumentBytes = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_document_bytes",
		Help:      "Size in bytes of the most recently committed document.",
	},
	[]string{"backend"},
)

// ObserveCommit matches docstore.CommitHook.
func ObserveCommit(backend string, size int, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		StoreDocumentBytes.WithLabelValues(backend).Set(float64(size))
	}
	StoreCommitsTotal.WithLabelValues(backend, result).Inc()
	StoreCommitDuration.WithLabelValues(backend).Observe(took.Seconds())
}

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskOperationsTotal counts successful task and subtask mutations.
// Label:
//   - operation: "create", "update", "delete", "subtask_create",
//     "subtask_update" or "subtask_delete"
var TaskOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_operations_total",
		Help:      "Total number of successful task mutations, by operation.",
	},
	[]string{"operation"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
