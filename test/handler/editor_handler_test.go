package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditorFlow(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	token := registerUser(t, env, "editor@example.com")
	docID := createDocument(t, env, token, "Draft")
	base := "/api/v1/documents/" + docID

	// A new document starts with a single empty paragraph.
	resp := env.do(t, http.MethodGet, base+"/blocks", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data := decodeData(t, resp)
	blocks := data["blocks"].([]interface{})
	require.Len(t, blocks, 1)
	first := blocks[0].(map[string]interface{})
	firstID := first["id"].(string)
	require.Equal(t, "paragraph", first["type"])

	// Turn it into a heading and give it content.
	resp = env.do(t, http.MethodPut, base+"/blocks/"+firstID+"/type", token, map[string]string{"type": "heading-1"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, http.MethodPut, base+"/blocks/"+firstID+"/content", token, map[string]string{"content": "Uvod"})
	require.Equal(t, http.StatusOK, resp.Code)

	// Insert a paragraph under it.
	resp = env.do(t, http.MethodPost, base+"/blocks/"+firstID+"/insert-after", token, map[string]string{"type": "paragraph"})
	require.Equal(t, http.StatusOK, resp.Code)
	paraID := decodeData(t, resp)["id"].(string)
	resp = env.do(t, http.MethodPut, base+"/blocks/"+paraID+"/content", token, map[string]string{"content": "Prvi odstavek."})
	require.Equal(t, http.StatusOK, resp.Code)

	// The chapter now has content.
	resp = env.do(t, http.MethodGet, base+"/blocks/"+firstID+"/chapter", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data = decodeData(t, resp)
	require.Equal(t, true, data["has_content"])

	// Collapsing the heading hides the paragraph from the visible list.
	resp = env.do(t, http.MethodPost, base+"/blocks/"+firstID+"/collapse", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, http.MethodGet, base+"/visible", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data = decodeData(t, resp)
	require.Len(t, data["blocks"].([]interface{}), 1)

	// Collapsing a paragraph is rejected.
	resp = env.do(t, http.MethodPost, base+"/blocks/"+paraID+"/collapse", token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	// Deleting the paragraph leaves the heading focused.
	resp = env.do(t, http.MethodDelete, base+"/blocks/"+paraID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data = decodeData(t, resp)
	require.Len(t, data["blocks"].([]interface{}), 1)
	require.Equal(t, firstID, data["focus"])

	// Mutations survive a fresh session: delete and reload the document.
	resp = env.do(t, http.MethodGet, "/api/v1/documents/"+docID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	doc := decodeData(t, resp)
	require.Contains(t, doc["blocks"], "Uvod")
}

func TestEditorUnknownBlock(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	token := registerUser(t, env, "editor2@example.com")
	docID := createDocument(t, env, token, "Draft")
	base := fmt.Sprintf("/api/v1/documents/%s/blocks/nope", docID)

	resp := env.do(t, http.MethodPut, base+"/content", token, map[string]string{"content": "x"})
	require.Equal(t, http.StatusNotFound, resp.Code)
	resp = env.do(t, http.MethodPost, base+"/insert-after", token, map[string]string{"type": "paragraph"})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEditorOwnership(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	owner := registerUser(t, env, "owner@example.com")
	other := registerUser(t, env, "other@example.com")
	docID := createDocument(t, env, owner, "Private")

	resp := env.do(t, http.MethodGet, "/api/v1/documents/"+docID+"/blocks", other, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSlashMenuFlow(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	token := registerUser(t, env, "slash@example.com")
	docID := createDocument(t, env, token, "Draft")
	base := "/api/v1/documents/" + docID

	resp := env.do(t, http.MethodGet, base+"/blocks", token, nil)
	blockID := decodeData(t, resp)["blocks"].([]interface{})[0].(map[string]interface{})["id"].(string)

	resp = env.do(t, http.MethodPost, base+"/slash/open", token, map[string]interface{}{
		"block_id": blockID,
		"anchor":   map[string]float64{"top": 120, "left": 40},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Filter down to the headings and commit the second one.
	for _, key := range []string{"h", "e", "a", "d"} {
		resp = env.do(t, http.MethodPost, base+"/slash/key", token, map[string]string{"key": key})
		require.Equal(t, http.StatusOK, resp.Code)
	}
	resp = env.do(t, http.MethodGet, base+"/slash", token, nil)
	data := decodeData(t, resp)
	require.Equal(t, true, data["open"])
	require.Len(t, data["options"].([]interface{}), 3)

	resp = env.do(t, http.MethodPost, base+"/slash/key", token, map[string]string{"key": "ArrowDown"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, http.MethodPost, base+"/slash/key", token, map[string]string{"key": "Enter"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, base+"/slash", token, nil)
	require.Equal(t, false, decodeData(t, resp)["open"])

	resp = env.do(t, http.MethodGet, base+"/blocks", token, nil)
	block := decodeData(t, resp)["blocks"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "heading-2", block["type"])

	// The menu refuses to open on a non-empty block.
	resp = env.do(t, http.MethodPut, base+"/blocks/"+blockID+"/content", token, map[string]string{"content": "x"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, http.MethodPost, base+"/slash/open", token, map[string]interface{}{
		"block_id": blockID,
		"anchor":   map[string]float64{},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}
