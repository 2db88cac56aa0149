package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/service"
)

// SessionCleanupJob persists and evicts editing sessions that have been idle
// past the registry TTL.
type SessionCleanupJob struct {
	documents *service.DocumentService
}

func NewSessionCleanupJob(documents *service.DocumentService) *SessionCleanupJob {
	return &SessionCleanupJob{documents: documents}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.documents == nil {
		return nil
	}
	closed, err := j.documents.CloseIdleSessions(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		logutil.GetLogger(ctx).With(zap.Int("closed", closed)).Info("idle sessions closed")
	}
	return nil
}
