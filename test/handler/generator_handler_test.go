package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorFlow(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	token := registerUser(t, env, "gen@example.com")
	docID := createDocument(t, env, token, "Paper")
	base := "/api/v1/documents/" + docID + "/generator"

	// Status before start is a 404.
	resp := env.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = env.do(t, http.MethodPost, base+"/start", token, map[string]string{
		"topic":    "Analiza socialnih omrežij",
		"language": "sl",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	status := decodeData(t, resp)
	require.Equal(t, float64(1), status["next"])

	// Generate the first three sections.
	for i := 1; i <= 3; i++ {
		resp = env.do(t, http.MethodPost, base+"/step", token, nil)
		require.Equal(t, http.StatusOK, resp.Code)
		section := decodeData(t, resp)
		require.Equal(t, float64(i), section["id"])
	}

	// Pause stops stepping until resume.
	resp = env.do(t, http.MethodPost, base+"/pause", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, http.MethodPost, base+"/step", token, nil)
	require.Equal(t, http.StatusConflict, resp.Code)
	resp = env.do(t, http.MethodPost, base+"/resume", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// Finish the run.
	for i := 4; i <= 8; i++ {
		resp = env.do(t, http.MethodPost, base+"/step", token, nil)
		require.Equal(t, http.StatusOK, resp.Code)
	}
	resp = env.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, true, decodeData(t, resp)["done"])

	// Apply writes the sections into the document.
	resp = env.do(t, http.MethodPost, base+"/apply", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, float64(8), decodeData(t, resp)["applied_sections"])

	blocksResp := env.do(t, http.MethodGet, "/api/v1/documents/"+docID+"/blocks", token, nil)
	blocks := decodeData(t, blocksResp)["blocks"].([]interface{})
	var headings []string
	for _, raw := range blocks {
		block := raw.(map[string]interface{})
		if block["type"] == "heading-1" {
			headings = append(headings, block["content"].(string))
		}
	}
	require.Contains(t, headings, "Outline")
	require.Contains(t, headings, "References")

	// Export assembles the paper with Slovenian section headings.
	resp = env.do(t, http.MethodGet, base+"/export", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.True(t, strings.HasPrefix(body, "# Analiza socialnih omrežij"))
	require.Contains(t, body, "## 2. Uvod")
	require.Contains(t, body, "## 8. Literatura in viri")
	require.Contains(t, resp.Header().Get("Content-Disposition"), "Analiza_socialnih_omrežij_raziskovalni_clanek.md")
}

func TestGeneratorRequiresTopic(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	token := registerUser(t, env, "gen2@example.com")
	docID := createDocument(t, env, token, "Paper")

	resp := env.do(t, http.MethodPost, "/api/v1/documents/"+docID+"/generator/start", token, map[string]string{"topic": "  "})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGeneratorOwnership(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()
	owner := registerUser(t, env, "gen3@example.com")
	other := registerUser(t, env, "gen4@example.com")
	docID := createDocument(t, env, owner, "Paper")

	resp := env.do(t, http.MethodPost, "/api/v1/documents/"+docID+"/generator/start", other, map[string]string{"topic": "x"})
	require.Equal(t, http.StatusNotFound, resp.Code)
}
