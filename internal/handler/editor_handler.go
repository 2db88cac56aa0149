package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/pkg/response"
	"github.com/outlinedev/outline/internal/service"
)

// EditorHandler exposes the live block editor over a per-document session.
// Every mutation is written through to the document row before returning.
type EditorHandler struct {
	documents *service.DocumentService
}

func NewEditorHandler(documents *service.DocumentService) *EditorHandler {
	return &EditorHandler{documents: documents}
}

func (h *EditorHandler) session(c *gin.Context) (*document.Session, string, string, bool) {
	userID := getUserID(c)
	docID := c.Param("id")
	session, err := h.documents.Session(c.Request.Context(), userID, docID)
	if err != nil {
		handleError(c, err)
		return nil, "", "", false
	}
	return session, userID, docID, true
}

func (h *EditorHandler) persist(c *gin.Context, userID, docID string) bool {
	if err := h.documents.Persist(c.Request.Context(), userID, docID); err != nil {
		handleError(c, err)
		return false
	}
	return true
}

func (h *EditorHandler) Blocks(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"blocks": session.Blocks(),
		"focus":  session.Focus(),
	})
}

// Visible returns the blocks left after collapsed chapters hide their
// bodies, computed fresh from block order and the collapse set.
func (h *EditorHandler) Visible(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"blocks":    session.Visible(),
		"collapsed": session.Collapsed(),
	})
}

type insertBlockRequest struct {
	Type string `json:"type"`
}

func (h *EditorHandler) InsertAfter(c *gin.Context) {
	var req insertBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	blockType := document.Type(req.Type)
	if req.Type == "" {
		blockType = document.TypeParagraph
	}
	if !document.ValidType(blockType) {
		response.Error(c, http.StatusBadRequest, "invalid", "unknown block type")
		return
	}
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	newID := session.InsertAfter(c.Param("blockID"), blockType)
	if newID == "" {
		response.Error(c, http.StatusNotFound, "not_found", "block not found")
		return
	}
	if !h.persist(c, userID, docID) {
		return
	}
	response.Success(c, gin.H{"id": newID, "focus": session.Focus()})
}

func (h *EditorHandler) DeleteBlock(c *gin.Context) {
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	session.DeleteBlock(c.Param("blockID"))
	if !h.persist(c, userID, docID) {
		return
	}
	response.Success(c, gin.H{"blocks": session.Blocks(), "focus": session.Focus()})
}

type updateContentRequest struct {
	Content string `json:"content"`
}

func (h *EditorHandler) UpdateContent(c *gin.Context) {
	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	if _, found := session.Get(blockID); !found {
		response.Error(c, http.StatusNotFound, "not_found", "block not found")
		return
	}
	session.UpdateContent(blockID, req.Content)
	if !h.persist(c, userID, docID) {
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type changeTypeRequest struct {
	Type string `json:"type"`
}

func (h *EditorHandler) ChangeType(c *gin.Context) {
	var req changeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	blockType := document.Type(req.Type)
	if !document.ValidType(blockType) {
		response.Error(c, http.StatusBadRequest, "invalid", "unknown block type")
		return
	}
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	if _, found := session.Get(blockID); !found {
		response.Error(c, http.StatusNotFound, "not_found", "block not found")
		return
	}
	session.ChangeBlockType(blockID, blockType)
	if !h.persist(c, userID, docID) {
		return
	}
	block, _ := session.Get(blockID)
	response.Success(c, block)
}

func (h *EditorHandler) ToggleChecked(c *gin.Context) {
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	if _, found := session.Get(blockID); !found {
		response.Error(c, http.StatusNotFound, "not_found", "block not found")
		return
	}
	session.ToggleChecked(blockID)
	if !h.persist(c, userID, docID) {
		return
	}
	block, _ := session.Get(blockID)
	response.Success(c, block)
}

// ToggleCollapse only flips view state, so nothing is persisted.
func (h *EditorHandler) ToggleCollapse(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	block, found := session.Get(blockID)
	if !found {
		response.Error(c, http.StatusNotFound, "not_found", "block not found")
		return
	}
	if !document.IsHeading(block.Type) {
		response.Error(c, http.StatusBadRequest, "invalid", "only headings collapse")
		return
	}
	session.ToggleCollapse(blockID)
	response.Success(c, gin.H{"collapsed": session.Collapsed()})
}

func (h *EditorHandler) Chapter(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	chapter := session.Chapter(c.Param("blockID"))
	if chapter == nil {
		response.Error(c, http.StatusNotFound, "not_found", "chapter not found")
		return
	}
	response.Success(c, gin.H{
		"chapter":     chapter,
		"has_content": session.ChapterHasContent(c.Param("blockID")),
	})
}

type slashOpenRequest struct {
	BlockID string          `json:"block_id"`
	Anchor  document.Anchor `json:"anchor"`
}

func (h *EditorHandler) SlashOpen(c *gin.Context) {
	var req slashOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	if !session.OpenSlashMenu(req.BlockID, req.Anchor) {
		response.Error(c, http.StatusBadRequest, "invalid", "menu opens on empty blocks only")
		return
	}
	response.Success(c, session.SlashMenuState())
}

type slashKeyRequest struct {
	Key string `json:"key"`
}

func (h *EditorHandler) SlashKey(c *gin.Context) {
	var req slashKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	session, userID, docID, ok := h.session(c)
	if !ok {
		return
	}
	committed := session.SlashKeystroke(req.Key)
	if committed != "" {
		if !h.persist(c, userID, docID) {
			return
		}
	}
	response.Success(c, gin.H{
		"committed": committed,
		"menu":      session.SlashMenuState(),
	})
}

func (h *EditorHandler) SlashClose(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	session.CloseSlashMenu()
	response.Success(c, session.SlashMenuState())
}

func (h *EditorHandler) SlashState(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, session.SlashMenuState())
}

type selectionRequest struct {
	Text   string          `json:"text"`
	Anchor document.Anchor `json:"anchor"`
}

func (h *EditorHandler) ReportSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	session.ReportSelection(req.Text, req.Anchor)
	response.Success(c, gin.H{"open": session.SelectionText() != ""})
}

func (h *EditorHandler) ClearSelection(c *gin.Context) {
	session, _, _, ok := h.session(c)
	if !ok {
		return
	}
	session.ClearSelection()
	response.Success(c, gin.H{"ok": true})
}
