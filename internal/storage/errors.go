package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when an image or snapshot key is absent from the bucket.
var ErrObjectNotFound = errors.New("storage: object not found")

// objectError 包装对象级错误；对象不存在时统一映射为 ErrObjectNotFound，
// 调用方据此返回 404 或把删除视为成功。
func objectError(op, objectKey string, err error) error {
	if err == nil {
		return nil
	}
	if isMissingObject(err) {
		return fmt.Errorf("%s %q: %w", op, objectKey, ErrObjectNotFound)
	}
	return fmt.Errorf("%s %q: %w", op, objectKey, err)
}

func isMissingObject(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		code := strings.ToLower(strings.TrimSpace(resp.Code))
		return code == "nosuchkey" || code == "notfound"
	}
	// 经过反向代理时只剩下错误文本
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nosuchkey") || strings.Contains(msg, "specified key does not exist")
}
