package metrics

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "asynq",
			Name:      "task_duration_seconds",
			Help:      "任务处理耗时（秒）。",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"task_type", "outcome"},
	)

	taskInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "folio",
			Subsystem: "asynq",
			Name:      "tasks_in_progress",
			Help:      "当前正在处理的任务数量。",
		},
		[]string{"task_type"},
	)

	tasksEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "asynq",
			Name:      "tasks_enqueued_total",
			Help:      "Tasks handed to the queue, by outcome.",
		},
		[]string{"task_type", "outcome"},
	)
)

// AsynqMetricsMiddleware 记录 Asynq 任务处理指标。
func AsynqMetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			taskType := task.Type()
			taskInProgress.WithLabelValues(taskType).Inc()
			defer taskInProgress.WithLabelValues(taskType).Dec()

			start := time.Now()
			err := next.ProcessTask(ctx, task)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			taskDuration.WithLabelValues(taskType, outcome).Observe(time.Since(start).Seconds())
			return err
		})
	}
}

// TaskEnqueued records the result of handing a task to the queue.
func TaskEnqueued(taskType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	tasksEnqueued.WithLabelValues(taskType, outcome).Inc()
}
