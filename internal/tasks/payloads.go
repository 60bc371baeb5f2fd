package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeSnapshotExport = "snapshot:export"
)

// SnapshotExportPayload 描述导出快照所需的最小信息。
type SnapshotExportPayload struct {
	Namespace     string    `json:"namespace"`
	Section       string    `json:"section"`
	Action        string    `json:"action"`
	CorrelationID string    `json:"correlation_id"`
	RequestedAt   time.Time `json:"requested_at"`
}

// SnapshotWindow is the dedupe window for snapshot exports.
const SnapshotWindow = 10 * time.Second

// NewSnapshotExportTask builds a task that exports the whole portfolio.
// Tasks for one namespace share a window id so a burst of edits yields
// a single export.
func NewSnapshotExportTask(p SnapshotExportPayload) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.TaskID(SnapshotTaskID(p.Namespace, p.RequestedAt, 0)),
		asynq.ProcessIn(2 * time.Second),
	}
	return asynq.NewTask(TypeSnapshotExport, payload), opts, nil
}

// SnapshotTaskID names the export for the window holding at, shifted by
// offset windows.
func SnapshotTaskID(namespace string, at time.Time, offset int64) string {
	window := at.UnixMilli()/SnapshotWindow.Milliseconds() + offset
	return fmt.Sprintf("snapshot:%s:%d", namespace, window)
}

// ParseSnapshotExport decodes a task payload.
func ParseSnapshotExport(task *asynq.Task) (SnapshotExportPayload, error) {
	var p SnapshotExportPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	return p, nil
}
