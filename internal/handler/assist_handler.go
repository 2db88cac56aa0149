package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

// AssistHandler is the thin HTTP surface over chapter-level vendor calls.
type AssistHandler struct {
	assists *service.AssistService
}

func NewAssistHandler(assists *service.AssistService) *AssistHandler {
	return &AssistHandler{assists: assists}
}

func (h *AssistHandler) Suggest(c *gin.Context) {
	result, err := h.assists.Suggest(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AssistHandler) Detect(c *gin.Context) {
	result, err := h.assists.Detect(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type plagiarismRequest struct {
	ExcludedSources []string `json:"excluded_sources"`
}

func (h *AssistHandler) Plagiarism(c *gin.Context) {
	var req plagiarismRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
			return
		}
	}
	result, err := h.assists.Plagiarism(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID"), req.ExcludedSources)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AssistHandler) Speak(c *gin.Context) {
	result, err := h.assists.Speak(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AssistHandler) StopSpeech(c *gin.Context) {
	if err := h.assists.StopSpeech(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type consultRequest struct {
	Question string `json:"question"`
}

func (h *AssistHandler) Consult(c *gin.Context) {
	var req consultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	answer, err := h.assists.Consult(c.Request.Context(), getUserID(c), c.Param("id"), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"answer": answer})
}

func (h *AssistHandler) Dismiss(c *gin.Context) {
	kind := document.Kind(c.Query("kind"))
	if err := h.assists.Dismiss(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("blockID"), kind); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *AssistHandler) Results(c *gin.Context) {
	results, err := h.assists.Results(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}
