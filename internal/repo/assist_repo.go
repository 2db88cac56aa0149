package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
)

// AssistResultRepo persists the most recent assistance result per
// (document, block, kind), so reloading a document can show prior scores.
type AssistResultRepo struct {
	db *sql.DB
}

type AssistResultRow struct {
	ID         string
	UserID     string
	DocumentID string
	BlockID    string
	Kind       string
	Payload    string
	Error      string
	Ctime      int64
}

func NewAssistResultRepo(db *sql.DB) *AssistResultRepo {
	return &AssistResultRepo{db: db}
}

func (r *AssistResultRepo) Upsert(ctx context.Context, row *AssistResultRow) error {
	del := map[string]interface{}{
		"document_id": row.DocumentID,
		"block_id":    row.BlockID,
		"kind":        row.Kind,
	}
	sqlStr, args, err := builder.BuildDelete("assist_results", del)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":          row.ID,
		"user_id":     row.UserID,
		"document_id": row.DocumentID,
		"block_id":    row.BlockID,
		"kind":        row.Kind,
		"payload":     row.Payload,
		"error":       row.Error,
		"ctime":       row.Ctime,
	}
	sqlStr, args, err = builder.BuildInsert("assist_results", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AssistResultRepo) ListByDocument(ctx context.Context, docID string) ([]AssistResultRow, error) {
	where := map[string]interface{}{
		"document_id": docID,
	}
	fields := []string{"id", "user_id", "document_id", "block_id", "kind", "payload", "error", "ctime"}
	sqlStr, args, err := builder.BuildSelect("assist_results", where, fields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AssistResultRow, 0)
	for rows.Next() {
		var row AssistResultRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.DocumentID, &row.BlockID, &row.Kind, &row.Payload, &row.Error, &row.Ctime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteByBlock drops every kind's row for a block; used when the block
// itself goes away.
func (r *AssistResultRepo) DeleteByBlock(ctx context.Context, docID, blockID string) error {
	where := map[string]interface{}{
		"document_id": docID,
		"block_id":    blockID,
	}
	sqlStr, args, err := builder.BuildDelete("assist_results", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// DeleteByBlockKind drops only one kind's row, leaving the block's other
// results in place.
func (r *AssistResultRepo) DeleteByBlockKind(ctx context.Context, docID, blockID, kind string) error {
	where := map[string]interface{}{
		"document_id": docID,
		"block_id":    blockID,
		"kind":        kind,
	}
	sqlStr, args, err := builder.BuildDelete("assist_results", where)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListDocumentIDs returns the distinct document ids present in the table,
// used by the orphan cleanup job.
func (r *AssistResultRepo) ListDocumentIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT document_id FROM assist_results")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteOrphans drops rows whose block id no longer exists in the given set
// for a document. An empty keep set removes every row of the document.
func (r *AssistResultRepo) DeleteOrphans(ctx context.Context, docID string, keep map[string]struct{}) (int64, error) {
	rows, err := r.ListByDocument(ctx, docID)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, row := range rows {
		if _, ok := keep[row.BlockID]; ok {
			continue
		}
		if err := r.DeleteByBlock(ctx, docID, row.BlockID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
