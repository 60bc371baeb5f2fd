package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"folio/internal/api/middleware"
	"folio/internal/editor"
)

// ListHandler exposes one editor.List over HTTP. F is the form type bound
// from the request body; toRecord turns it into a record, parsing the comma
// separated list fields.
type ListHandler[T editor.Record[T], F any] struct {
	list     *editor.List[T]
	toRecord func(F) T
}

// NewListHandler 为一个列表分区构造处理器。
func NewListHandler[T editor.Record[T], F any](list *editor.List[T], toRecord func(F) T) *ListHandler[T, F] {
	return &ListHandler[T, F]{list: list, toRecord: toRecord}
}

// Register mounts read routes on public and write routes on protected, both
// under /<section>.
func (h *ListHandler[T, F]) Register(public, protected *gin.RouterGroup) {
	path := "/" + h.list.Section()

	public.GET(path, h.List)
	public.GET(path+"/:id", h.Get)

	protected.POST(path, h.Create)
	protected.PUT(path+"/:id", h.Update)
	protected.DELETE(path+"/:id", h.Delete)
	protected.POST(path+"/reset", h.Reset)
}

// List 返回分区内全部记录。
func (h *ListHandler[T, F]) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"section":       h.list.Section(),
		"confirmDelete": h.list.ConfirmsDeletes(),
		"items":         h.list.Items(),
	})
}

func (h *ListHandler[T, F]) Get(c *gin.Context) {
	record, ok := h.list.Find(c.Param("id"))
	if !ok {
		NotFound(c, "record not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create appends a record under a newly generated id.
func (h *ListHandler[T, F]) Create(c *gin.Context) {
	var form F
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.list.Add(c.Request.Context(), h.toRecord(form))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Update 整体替换指定 id 的记录，id 保持不变。
func (h *ListHandler[T, F]) Update(c *gin.Context) {
	var form F
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.list.Replace(c.Request.Context(), c.Param("id"), h.toRecord(form))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete removes a record. When the list confirms deletes the request must
// carry confirm=true, otherwise 409 is returned and nothing changes.
func (h *ListHandler[T, F]) Delete(c *gin.Context) {
	confirmed := false
	if raw := c.Query("confirm"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequest(c, "confirm must be a boolean")
			return
		}
		confirmed = v
	}

	if err := h.list.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset 恢复分区默认内容。
func (h *ListHandler[T, F]) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"section": h.list.Section(),
		"items":   h.list.Reset(c.Request.Context()),
	})
}

func (h *ListHandler[T, F]) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrRecordNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, editor.ErrConfirmationRequired):
		Conflict(c, "confirmation required")
	default:
		middleware.LoggerFromContext(c).Error("list edit failed",
			slog.String("section", h.list.Section()),
			slog.Any("error", err),
		)
		Internal(c, "internal error")
	}
}
