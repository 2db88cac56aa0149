package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

type GeneratorHandler struct {
	generator *service.GeneratorService
	documents *service.DocumentService
}

func NewGeneratorHandler(generator *service.GeneratorService, documents *service.DocumentService) *GeneratorHandler {
	return &GeneratorHandler{generator: generator, documents: documents}
}

func (h *GeneratorHandler) requireDocument(c *gin.Context) (string, bool) {
	docID := c.Param("id")
	if _, err := h.documents.Get(c.Request.Context(), getUserID(c), docID); err != nil {
		handleError(c, err)
		return "", false
	}
	return docID, true
}

func (h *GeneratorHandler) Start(c *gin.Context) {
	var params service.GenerateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	if err := h.generator.Start(c.Request.Context(), docID, params); err != nil {
		handleError(c, err)
		return
	}
	status, err := h.generator.Status(docID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, status)
}

func (h *GeneratorHandler) Step(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	result, err := h.generator.Step(c.Request.Context(), docID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *GeneratorHandler) Pause(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	if err := h.generator.Pause(docID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *GeneratorHandler) Resume(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	if err := h.generator.Resume(docID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *GeneratorHandler) Reset(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	h.generator.Reset(docID)
	response.Success(c, gin.H{"ok": true})
}

func (h *GeneratorHandler) Status(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	status, err := h.generator.Status(docID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, status)
}

// Apply copies the generated sections into the document as heading and
// paragraph blocks.
func (h *GeneratorHandler) Apply(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	status, err := h.generator.Status(docID)
	if err != nil {
		handleError(c, err)
		return
	}
	applied := 0
	for id := 1; id <= len(status.SectionIDs); id++ {
		text, found := status.Sections[id]
		if !found {
			continue
		}
		blocks := service.SectionBlocks(status.SectionIDs[id], text)
		if err := h.documents.AppendBlocks(c.Request.Context(), getUserID(c), docID, blocks); err != nil {
			handleError(c, err)
			return
		}
		applied++
	}
	response.Success(c, gin.H{"applied_sections": applied})
}

func (h *GeneratorHandler) Export(c *gin.Context) {
	docID, ok := h.requireDocument(c)
	if !ok {
		return
	}
	name, content, err := h.generator.ExportMarkdown(docID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}
