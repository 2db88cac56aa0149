package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/outlinedev/outline/internal/config"
	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/filestore"
	"github.com/outlinedev/outline/internal/handler"
	"github.com/outlinedev/outline/internal/middleware"
	"github.com/outlinedev/outline/internal/model"
	"github.com/outlinedev/outline/internal/repo"
	"github.com/outlinedev/outline/internal/service"
	"github.com/outlinedev/outline/test/testutil"
)

// fakeProvider answers every prompt with a numbered canned reply.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return fmt.Sprintf("reply %d", len(f.prompts)), nil
}

// parseStub stands in for the external parse service.
type parseStub struct {
	mu     sync.Mutex
	status int
	result *model.ParseResult
}

func (p *parseStub) set(status int, result *model.ParseResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.result = result
}

func (p *parseStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	status, result := p.status, p.result
	p.mu.Unlock()
	w.WriteHeader(status)
	if result != nil {
		_ = json.NewEncoder(w).Encode(result)
	}
}

type testEnv struct {
	router   http.Handler
	provider *fakeProvider
	parse    *parseStub
}

func setupRouter(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	docRepo := repo.NewDocumentRepo(db)
	assistRepo := repo.NewAssistResultRepo(db)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{
			"dir": t.TempDir(),
		},
	})
	require.NoError(t, err)

	parse := &parseStub{status: http.StatusOK, result: &model.ParseResult{
		Paragraphs: []document.Paragraph{
			{ID: "p1", Style: "Heading 1", Content: "Uvod"},
			{ID: "p2", Style: "Normal", Content: "Prvi odstavek."},
		},
	}}
	parseServer := httptest.NewServer(parse)

	provider := &fakeProvider{}
	jwtSecret := []byte("test-secret")

	sessions := service.NewSessionRegistry(time.Hour)
	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	documentService := service.NewDocumentService(docRepo, assistRepo, sessions)
	importService := service.NewImportService(documentService, store, parseServer.URL, 5*time.Second, 20)
	assistService := service.NewAssistService(documentService, userRepo, assistRepo,
		provider, "test-model", 100000, nil, nil, store, "")
	generatorService := service.NewGeneratorService(provider, "test-model")
	exportService := service.NewExportService(documentService)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Documents: handler.NewDocumentHandler(documentService),
		Editor:    handler.NewEditorHandler(documentService),
		Import:    handler.NewImportHandler(importService),
		Assist:    handler.NewAssistHandler(assistService),
		Generator: handler.NewGeneratorHandler(generatorService, documentService),
		Export:    handler.NewExportHandler(exportService),
		Files:     handler.NewFileHandler(store),
		JWTSecret: jwtSecret,
		// no rate limiting in tests
		AssistWindow: 0,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	env := &testEnv{router: engine, provider: provider, parse: parse}
	return env, func() {
		parseServer.Close()
		cleanup()
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	return result.Data
}

func registerUser(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	data := decodeData(t, resp)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createDocument(t *testing.T, env *testEnv, token, title string) string {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/v1/documents", token, map[string]string{"title": title})
	require.Equal(t, http.StatusOK, resp.Code)
	data := decodeData(t, resp)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}
