package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"folio/internal/errcode"
	"folio/internal/events"
	"folio/internal/kvstore"
	"folio/internal/portfolio"
	"folio/internal/storage"
	"folio/internal/tasks"
)

// snapshotStorage is the subset of *storage.Client the handler needs.
type snapshotStorage interface {
	PutJSON(ctx context.Context, objectName string, body []byte) error
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// SnapshotDocument is what gets written to object storage.
type SnapshotDocument struct {
	Namespace  string             `json:"namespace"`
	ExportedAt time.Time          `json:"exported_at"`
	Trigger    string             `json:"trigger"`
	Portfolio  portfolio.Snapshot `json:"portfolio"`
}

// SnapshotTaskHandler 读取当前命名空间下的全部分区并导出 JSON 快照。
type SnapshotTaskHandler struct {
	store     kvstore.Store
	namespace string
	storage   snapshotStorage
	publisher events.Publisher
	logger    *slog.Logger
	keep      int
	now       func() time.Time
}

// NewSnapshotTaskHandler builds a handler keeping the newest keep snapshots.
// namespace must be the one store is scoped to; tasks for any other
// namespace are rejected.
func NewSnapshotTaskHandler(store kvstore.Store, namespace string, storageClient snapshotStorage, publisher events.Publisher, logger *slog.Logger, keep int) *SnapshotTaskHandler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotTaskHandler{
		store:     store,
		namespace: namespace,
		storage:   storageClient,
		publisher: publisher,
		logger:    logger,
		keep:      keep,
		now:       time.Now,
	}
}

// ProcessTask implements asynq.Handler.
func (h *SnapshotTaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := tasks.ParseSnapshotExport(task)
	if err != nil {
		// a malformed payload will never succeed
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.With(
		slog.String("namespace", payload.Namespace),
		slog.String("correlation_id", payload.CorrelationID),
	)

	if payload.Namespace != h.namespace {
		log.Error("snapshot task for foreign namespace", slog.String("worker_namespace", h.namespace))
		return fmt.Errorf("namespace %q is not served by this worker (%q): %w", payload.Namespace, h.namespace, asynq.SkipRetry)
	}

	key, err := h.export(ctx, payload)
	if err != nil {
		log.Error("snapshot export failed", slog.Any("error", err))
		h.notify(ctx, log, SnapshotNotifyMessage{
			Status:        "failed",
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  err.Error(),
		})
		return err
	}

	log.Info("snapshot exported", slog.String("object_key", key))
	msg := SnapshotNotifyMessage{
		Status:        "completed",
		ObjectKey:     key,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if stored, err := h.store.Keys(ctx, ""); err == nil && len(stored) == 0 {
		msg.ErrorCode = errcode.ResourceMissing
		msg.ErrorMessage = "no stored sections, exported default content"
	}
	h.notify(ctx, log, msg)

	if err := h.prune(ctx, payload.Namespace); err != nil {
		log.Warn("prune old snapshots failed", slog.Any("error", err))
	}
	return nil
}

func (h *SnapshotTaskHandler) export(ctx context.Context, payload tasks.SnapshotExportPayload) (string, error) {
	// The site is loaded fresh so the snapshot reflects what is durable,
	// not what some API process holds in memory.
	site := portfolio.NewSite(ctx, h.store, portfolio.Options{}, h.logger)

	at := h.now().UTC()
	doc := SnapshotDocument{
		Namespace:  payload.Namespace,
		ExportedAt: at,
		Trigger:    payload.Section + ":" + payload.Action,
		Portfolio:  site.Snapshot(),
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%d.json", SnapshotPrefix(payload.Namespace), at.UnixMilli())
	if err := h.storage.PutJSON(ctx, key, body); err != nil {
		return "", err
	}
	return key, nil
}

func (h *SnapshotTaskHandler) prune(ctx context.Context, namespace string) error {
	if h.keep <= 0 {
		return nil
	}
	objects, err := h.storage.ListObjects(ctx, SnapshotPrefix(namespace), 0)
	if err != nil {
		return err
	}
	if len(objects) <= h.keep {
		return nil
	}
	for _, obj := range objects[h.keep:] {
		if err := h.storage.DeleteObject(ctx, obj.Key); err != nil {
			return err
		}
	}
	return nil
}

func (h *SnapshotTaskHandler) notify(ctx context.Context, log *slog.Logger, msg SnapshotNotifyMessage) {
	msg.Type = "snapshot_exported"
	body, err := json.Marshal(msg)
	if err != nil {
		log.Error("encode notification failed", slog.Any("error", err))
		return
	}
	if err := h.publisher.Publish(ctx, body); err != nil {
		log.Warn("publish notification failed", slog.Any("error", err))
	}
}

// SnapshotPrefix is the object key prefix for a namespace's snapshots.
func SnapshotPrefix(namespace string) string {
	return "snapshots/" + namespace + "/"
}
