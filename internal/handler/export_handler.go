package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "markdown")
	switch format {
	case "markdown", "md":
		name, content, err := h.exports.Markdown(c.Request.Context(), getUserID(c), c.Param("id"))
		if err != nil {
			handleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
	case "html":
		name, content, err := h.exports.HTML(c.Request.Context(), getUserID(c), c.Param("id"))
		if err != nil {
			handleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(content))
	default:
		response.Error(c, http.StatusBadRequest, "invalid", "unknown export format")
	}
}
