package job

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/document"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
	"github.com/outlinedev/outline/internal/repo"
)

// AssistCleanupJob drops persisted assist rows whose block no longer exists
// in its document, plus every row belonging to a deleted document.
type AssistCleanupJob struct {
	docs    *repo.DocumentRepo
	assists *repo.AssistResultRepo
}

func NewAssistCleanupJob(docs *repo.DocumentRepo, assists *repo.AssistResultRepo) *AssistCleanupJob {
	return &AssistCleanupJob{docs: docs, assists: assists}
}

func (j *AssistCleanupJob) Name() string {
	return "assist_result_cleanup"
}

func (j *AssistCleanupJob) Run(ctx context.Context) error {
	if j.docs == nil || j.assists == nil {
		return nil
	}
	docIDs, err := j.assists.ListDocumentIDs(ctx)
	if err != nil {
		return err
	}
	var removed int64
	for _, docID := range docIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		keep, err := j.liveBlockIDs(ctx, docID)
		if err != nil {
			return err
		}
		n, err := j.assists.DeleteOrphans(ctx, docID, keep)
		if err != nil {
			return err
		}
		removed += n
	}
	if removed > 0 {
		logutil.GetLogger(ctx).With(zap.Int64("removed", removed)).Info("orphan assist results removed")
	}
	return nil
}

func (j *AssistCleanupJob) liveBlockIDs(ctx context.Context, docID string) (map[string]struct{}, error) {
	doc, err := j.docs.GetAnyByID(ctx, docID)
	if errors.Is(err, appErr.ErrNotFound) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.State != repo.DocumentStateNormal {
		return map[string]struct{}{}, nil
	}
	var blocks []document.Block
	if err := json.Unmarshal([]byte(doc.Blocks), &blocks); err != nil {
		return nil, err
	}
	keep := make(map[string]struct{}, len(blocks))
	for _, block := range blocks {
		keep[block.ID] = struct{}{}
	}
	return keep, nil
}
