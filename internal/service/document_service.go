package service

import (
	"context"
	"encoding/json"

	"github.com/outlinedev/outline/internal/document"
	"github.com/outlinedev/outline/internal/model"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
	"github.com/outlinedev/outline/internal/pkg/timeutil"
	"github.com/outlinedev/outline/internal/repo"
)

type DocumentService struct {
	docs     *repo.DocumentRepo
	assists  *repo.AssistResultRepo
	sessions *SessionRegistry
}

func NewDocumentService(docs *repo.DocumentRepo, assists *repo.AssistResultRepo, sessions *SessionRegistry) *DocumentService {
	return &DocumentService{docs: docs, assists: assists, sessions: sessions}
}

func (s *DocumentService) Create(ctx context.Context, userID, title string) (*model.Document, error) {
	blocks, err := encodeBlocks(document.NewStore().Blocks())
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:     newID(),
		UserID: userID,
		Title:  title,
		Blocks: blocks,
		State:  repo.DocumentStateNormal,
		Ctime:  now,
		Mtime:  now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateImported creates a document pre-seeded with mapped blocks and the
// cover metadata extracted by the parse service.
func (s *DocumentService) CreateImported(ctx context.Context, userID, title string, blocks []document.Block, cover *model.CoverInfo) (*model.Document, error) {
	encoded, err := encodeBlocks(blocks)
	if err != nil {
		return nil, err
	}
	coverJSON := ""
	if cover != nil {
		data, err := json.Marshal(cover)
		if err != nil {
			return nil, err
		}
		coverJSON = string(data)
	}
	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:     newID(),
		UserID: userID,
		Title:  title,
		Blocks: encoded,
		Cover:  coverJSON,
		State:  repo.DocumentStateNormal,
		Ctime:  now,
		Mtime:  now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, userID string, limit, offset uint) ([]model.Document, error) {
	return s.docs.List(ctx, userID, limit, offset)
}

func (s *DocumentService) Get(ctx context.Context, userID, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) Rename(ctx context.Context, userID, docID, title string) error {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return err
	}
	doc.Title = title
	doc.Mtime = timeutil.NowUnix()
	return s.docs.Update(ctx, doc)
}

func (s *DocumentService) Delete(ctx context.Context, userID, docID string) error {
	if err := s.docs.Delete(ctx, userID, docID, timeutil.NowUnix()); err != nil {
		return err
	}
	s.sessions.Remove(docID)
	// drop every persisted assist row for the document
	if _, err := s.assists.DeleteOrphans(ctx, docID, map[string]struct{}{}); err != nil {
		return err
	}
	return nil
}

// Session returns the live editing session for a document, materializing one
// from the stored block list on first access. Persisted assist results are
// replayed into the fresh session so earlier vendor calls survive a restart.
func (s *DocumentService) Session(ctx context.Context, userID, docID string) (*document.Session, error) {
	if session, ok := s.sessions.Get(docID); ok {
		return session, nil
	}
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	blocks, err := decodeBlocks(doc.Blocks)
	if err != nil {
		return nil, err
	}
	session := document.NewSession(document.SeedStore(blocks))
	rows, err := s.assists.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		kind := document.Kind(row.Kind)
		if !document.ValidKind(kind) {
			continue
		}
		token, ok := session.BeginAssist(row.BlockID, kind)
		if !ok {
			continue
		}
		session.CompleteAssist(row.BlockID, kind, token, document.Result{
			Kind:    kind,
			BlockID: row.BlockID,
			Payload: json.RawMessage(row.Payload),
			Err:     row.Error,
		})
	}
	s.sessions.Put(docID, userID, session)
	return session, nil
}

// AppendBlocks adds blocks to the end of the document through its live
// session, then persists. Used when applying generated sections.
func (s *DocumentService) AppendBlocks(ctx context.Context, userID, docID string, blocks []document.Block) error {
	session, err := s.Session(ctx, userID, docID)
	if err != nil {
		return err
	}
	existing := session.Blocks()
	last := existing[len(existing)-1].ID
	for _, block := range blocks {
		id := session.InsertAfter(last, block.Type)
		if id == "" {
			return appErr.ErrInternal
		}
		session.UpdateContent(id, block.Content)
		last = id
	}
	return s.persistSession(ctx, userID, docID, session)
}

// Persist writes the session's current block list back to the document row.
func (s *DocumentService) Persist(ctx context.Context, userID, docID string) error {
	session, ok := s.sessions.Get(docID)
	if !ok {
		return appErr.ErrNotFound
	}
	return s.persistSession(ctx, userID, docID, session)
}

func (s *DocumentService) persistSession(ctx context.Context, userID, docID string, session *document.Session) error {
	encoded, err := encodeBlocks(session.Blocks())
	if err != nil {
		return err
	}
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return err
	}
	doc.Blocks = encoded
	doc.Mtime = timeutil.NowUnix()
	return s.docs.Update(ctx, doc)
}

// CloseIdleSessions persists and evicts sessions idle past the registry TTL.
func (s *DocumentService) CloseIdleSessions(ctx context.Context) (int, error) {
	expired := s.sessions.ExpireIdle()
	var lastErr error
	for _, e := range expired {
		if err := s.persistSession(ctx, e.UserID, e.DocID, e.Session); err != nil && !appErr.IsNotFound(err) {
			lastErr = err
		}
	}
	return len(expired), lastErr
}

// CloseAllSessions persists every live session. Called on shutdown.
func (s *DocumentService) CloseAllSessions(ctx context.Context) error {
	var lastErr error
	for _, e := range s.sessions.Drain() {
		if err := s.persistSession(ctx, e.UserID, e.DocID, e.Session); err != nil && !appErr.IsNotFound(err) {
			lastErr = err
		}
	}
	return lastErr
}

func encodeBlocks(blocks []document.Block) (string, error) {
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeBlocks(raw string) ([]document.Block, error) {
	if raw == "" {
		return document.NewStore().Blocks(), nil
	}
	var blocks []document.Block
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return document.NewStore().Blocks(), nil
	}
	return blocks, nil
}
