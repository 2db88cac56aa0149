package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

type ImportHandler struct {
	imports *service.ImportService
}

func NewImportHandler(imports *service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

func (h *ImportHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.imports.MaxBytes()+4096)
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_file", "file is required, max "+formatUploadLimit(h.imports.MaxBytes()))
		return
	}
	if file.Size > h.imports.MaxBytes() {
		response.Error(c, http.StatusBadRequest, "invalid_file", "file exceeds "+formatUploadLimit(h.imports.MaxBytes()))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_file", "failed to open file")
		return
	}
	defer opened.Close()

	outcome, err := h.imports.Import(c.Request.Context(), getUserID(c), file.Filename, opened)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, outcome)
}
