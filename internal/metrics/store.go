package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "store",
			Name:      "op_duration_seconds",
			Help:      "键值存储操作耗时分布（秒）。",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op", "outcome"},
	)

	persistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "state",
			Name:      "persist_failures_total",
			Help:      "写入失败但内存状态已更新的次数。",
		},
		[]string{"key"},
	)

	corruptPayloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "state",
			Name:      "corrupt_payloads_total",
			Help:      "无法解析而回退到默认值的持久化数据次数。",
		},
		[]string{"key"},
	)

	editorCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "editor",
			Name:      "commits_total",
			Help:      "List editor commits by section and action.",
		},
		[]string{"section", "action"},
	)
)

// ObserveStoreOp records one key-value store call.
func ObserveStoreOp(backend, op, outcome string, elapsed time.Duration) {
	storeOpDuration.WithLabelValues(backend, op, outcome).Observe(elapsed.Seconds())
}

// PersistFailed counts a swallowed write failure for key.
func PersistFailed(key string) {
	persistFailures.WithLabelValues(key).Inc()
}

// CorruptPayload counts a stored payload that could not be decoded.
func CorruptPayload(key string) {
	corruptPayloads.WithLabelValues(key).Inc()
}

// EditorCommitted counts an add, edit or delete committed by a list editor.
func EditorCommitted(section, action string) {
	editorCommits.WithLabelValues(section, action).Inc()
}
