package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type documentCreateRequest struct {
	Title string `json:"title"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req documentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled"
	}
	doc, err := h.documents.Create(c.Request.Context(), getUserID(c), title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit, _ := strconv.ParseUint(c.DefaultQuery("limit", "50"), 10, 32)
	offset, _ := strconv.ParseUint(c.DefaultQuery("offset", "0"), 10, 32)
	docs, err := h.documents.List(c.Request.Context(), getUserID(c), uint(limit), uint(offset))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"documents": docs})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

type documentRenameRequest struct {
	Title string `json:"title"`
}

func (h *DocumentHandler) Rename(c *gin.Context) {
	var req documentRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "title is required")
		return
	}
	if err := h.documents.Rename(c.Request.Context(), getUserID(c), c.Param("id"), title); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
