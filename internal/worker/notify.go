package worker

// SnapshotNotifyMessage 通过 Redis Pub/Sub 推送给 WebSocket 客户端。
// 注意：这里的字段名与前端解析保持一致。
type SnapshotNotifyMessage struct {
	Type          string `json:"type"`
	Status        string `json:"status"`
	ObjectKey     string `json:"object_key,omitempty"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
