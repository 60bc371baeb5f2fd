package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"folio/internal/metrics"
)

// Enqueuer is the part of *asynq.Client the API uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SnapshotScheduler queues snapshot exports after edits.
type SnapshotScheduler struct {
	client    Enqueuer
	namespace string
	logger    *slog.Logger
	now       func() time.Time
}

// NewSnapshotScheduler returns a scheduler; a nil client disables it.
func NewSnapshotScheduler(client Enqueuer, namespace string, logger *slog.Logger) *SnapshotScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotScheduler{client: client, namespace: namespace, logger: logger, now: time.Now}
}

// Schedule enqueues an export. Failures are logged; an edit never fails
// because its snapshot could not be queued.
func (s *SnapshotScheduler) Schedule(ctx context.Context, section, action, correlationID string) {
	if s == nil || s.client == nil {
		return
	}
	at := s.now()
	task, opts, err := NewSnapshotExportTask(SnapshotExportPayload{
		Namespace:     s.namespace,
		Section:       section,
		Action:        action,
		CorrelationID: correlationID,
		RequestedAt:   at,
	})
	if err != nil {
		s.logger.Error("build snapshot task failed", slog.Any("error", err))
		return
	}

	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// 本窗口的任务可能已在执行且读到了旧数据，顺延到下一个窗口再导出一次。
		// 下一个窗口的任务若已存在，它一定晚于本次提交运行。
		next := append(opts,
			asynq.TaskID(SnapshotTaskID(s.namespace, at, 1)),
			asynq.ProcessIn(SnapshotWindow),
		)
		_, err = s.client.EnqueueContext(ctx, task, next...)
	}
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		err = nil
	}
	metrics.TaskEnqueued(TypeSnapshotExport, err)
	if err != nil {
		s.logger.Warn("enqueue snapshot failed", slog.Any("error", err), slog.String("section", section))
	}
}
