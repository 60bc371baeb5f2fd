package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"folio/internal/api/middleware"
	"folio/internal/storage"
)

// 图片字段直接保存该链接，因此使用 S3 允许的最长签名有效期。
const assetURLTTL = 7 * 24 * time.Hour

var errInfected = errors.New("malicious file detected")

// assetStorage is the subset of *storage.Client used for images.
type assetStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
	StatObject(ctx context.Context, objectKey string) (storage.ObjectMeta, error)
}

type scanFunc func(r io.Reader) error

// AssetHandler 负责图片上传与访问链接签发。
type AssetHandler struct {
	storage  assetStorage
	logger   *slog.Logger
	scan     scanFunc
	maxBytes int64
}

// NewAssetHandler 返回 AssetHandler 实例。clamdAddr 为空时跳过病毒扫描。
func NewAssetHandler(storageClient assetStorage, logger *slog.Logger, clamdAddr string, maxBytes int64) *AssetHandler {
	h := &AssetHandler{
		storage:  storageClient,
		logger:   logger,
		maxBytes: maxBytes,
	}
	if clamdAddr != "" {
		h.scan = clamdScanner(clamdAddr)
	}
	return h
}

func clamdScanner(addr string) scanFunc {
	return func(r io.Reader) error {
		client := clamd.NewClamd(addr)
		abort := make(chan bool)
		defer close(abort)

		results, err := client.ScanStream(r, abort)
		if err != nil {
			return fmt.Errorf("scan stream: %w", err)
		}
		infected := false
		for result := range results {
			if result.Status != clamd.RES_OK {
				infected = true
			}
		}
		if infected {
			return errInfected
		}
		return nil
	}
}

// UploadAsset 处理受保护的图片上传，并在上传前扫描病毒。
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	logger := middleware.LoggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > h.maxBytes {
		TooLarge(c, "file too large")
		return
	}
	ext := imageExtension(file.Filename)
	if ext == "" {
		BadRequest(c, "unsupported image type")
		return
	}
	contentType := allowedImageTypes[ext]

	sniffed, err := sniffContentType(file)
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	if sniffed != contentType {
		BadRequest(c, "file content does not match its extension")
		return
	}

	if h.scan != nil {
		reader, err := file.Open()
		if err != nil {
			Internal(c, "failed to open file")
			return
		}
		err = h.scan(reader)
		reader.Close()
		if errors.Is(err, errInfected) {
			logger.Warn("rejected infected upload", slog.String("filename", file.Filename))
			BadRequest(c, errInfected.Error())
			return
		}
		if err != nil {
			logger.Error("scan file", slog.Any("error", err))
			Internal(c, "failed to scan file")
			return
		}
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer reader.Close()

	ctx := c.Request.Context()
	objectKey := assetPrefix + uuid.NewString() + ext
	if _, err := h.storage.UploadFile(ctx, objectKey, reader, file.Size, contentType); err != nil {
		logger.Error("upload file", slog.Any("error", err))
		Internal(c, "failed to upload file")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, objectKey, assetURLTTL)
	if err != nil {
		logger.Error("generate asset url", slog.String("objectKey", objectKey), slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}

	logger.Info("asset uploaded", slog.String("objectKey", objectKey), slog.Int64("size", file.Size))
	c.JSON(http.StatusCreated, gin.H{"objectKey": objectKey, "url": url})
}

// ListAssets 列出已上传的图片，最新的在前。
func (h *AssetHandler) ListAssets(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "60"))
	if err != nil || limit <= 0 {
		limit = 60
	}
	if limit > 200 {
		limit = 200
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	objects, err := h.storage.ListObjects(ctx, assetPrefix, limit)
	if err != nil {
		logger.Error("list assets", slog.Any("error", err))
		Internal(c, "failed to list assets")
		return
	}

	items := make([]gin.H, 0, len(objects))
	for _, obj := range objects {
		url, err := h.storage.GeneratePresignedURL(ctx, obj.Key, assetURLTTL)
		if err != nil {
			logger.Error("generate asset url", slog.String("objectKey", obj.Key), slog.Any("error", err))
			continue
		}
		items = append(items, gin.H{
			"objectKey":    obj.Key,
			"url":          url,
			"size":         obj.Size,
			"lastModified": obj.LastModified,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAssetURL 为已有图片重新签发链接。
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	objectKey := c.Query("key")
	if objectKey == "" {
		BadRequest(c, "missing key")
		return
	}
	if !isValidAssetObjectKey(objectKey) {
		Forbidden(c, "access denied")
		return
	}

	if _, err := h.storage.StatObject(c.Request.Context(), objectKey); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			NotFound(c, "asset not found")
			return
		}
		middleware.LoggerFromContext(c).Error("stat asset", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}

	url, err := h.storage.GeneratePresignedURL(c.Request.Context(), objectKey, assetURLTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("generate presigned url", slog.Any("error", err))
		Internal(c, "failed to generate url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func sniffContentType(file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
