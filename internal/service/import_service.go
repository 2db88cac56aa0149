package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/filestore"
	"github.com/outlinedev/outline/internal/model"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
)

// ImportService hands an uploaded thesis off to the external parse service
// and seeds a new document from the mapped paragraphs.
type ImportService struct {
	documents *DocumentService
	store     filestore.Store
	baseURL   string
	client    *http.Client
	maxBytes  int64
}

func NewImportService(documents *DocumentService, store filestore.Store, baseURL string, timeout time.Duration, maxUploadMB int64) *ImportService {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &ImportService{
		documents: documents,
		store:     store,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		maxBytes:  maxUploadMB * 1024 * 1024,
	}
}

func (s *ImportService) MaxBytes() int64 {
	return s.maxBytes
}

type ImportOutcome struct {
	Document *model.Document    `json:"document"`
	Parse    *model.ParseResult `json:"parse"`
	FileKey  string             `json:"file_key"`
}

func (s *ImportService) Import(ctx context.Context, userID, fileName string, file io.Reader) (*ImportOutcome, error) {
	endpoint, ext, err := parseEndpoint(fileName)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, appErr.ErrInvalidFile
	}
	if len(data) == 0 {
		return nil, appErr.ErrInvalidFile
	}

	fileKey := newID() + ext
	if err := s.store.Save(ctx, fileKey, nopSeekCloser{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return nil, err
	}

	parse, err := s.parse(ctx, endpoint, fileName, data)
	if err != nil {
		return nil, err
	}
	if len(parse.Paragraphs) == 0 {
		return nil, appErr.ErrParseFailed
	}

	blocks := document.MapParagraphs(parse.Paragraphs, parse.TableOfContents)
	title := importTitle(parse.Cover, fileName)
	doc, err := s.documents.CreateImported(ctx, userID, title, blocks, parse.Cover)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).With(
		zap.String("doc_id", doc.ID),
		zap.Int("paragraphs", len(parse.Paragraphs)),
		zap.Int("toc_entries", len(parse.TableOfContents)),
	).Info("document imported")
	return &ImportOutcome{Document: doc, Parse: parse, FileKey: fileKey}, nil
}

func (s *ImportService) parse(ctx context.Context, endpoint, fileName string, data []byte) (*model.ParseResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logutil.GetLogger(ctx).With(
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		).Error("parse service rejected upload")
		return nil, appErr.ErrParseFailed
	}
	var parse model.ParseResult
	if err := json.NewDecoder(resp.Body).Decode(&parse); err != nil {
		return nil, appErr.ErrParseFailed
	}
	return &parse, nil
}

func parseEndpoint(fileName string) (endpoint, ext string, err error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "/upload-pdf", ".pdf", nil
	case ".docx":
		return "/upload-docx", ".docx", nil
	default:
		return "", "", appErr.ErrInvalidFile
	}
}

func importTitle(cover *model.CoverInfo, fileName string) string {
	if cover != nil && strings.TrimSpace(cover.Title) != "" {
		return strings.TrimSpace(cover.Title)
	}
	base := filepath.Base(fileName)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" {
		return "Untitled"
	}
	return title
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }
