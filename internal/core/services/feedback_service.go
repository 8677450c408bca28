package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

type feedbackServiceImpl struct {
	feedback *recordstore.Store[domain.Feedback]
	logger   *slog.Logger
}

// NewFeedbackService creates the append-only feedback service.
func NewFeedbackService(feedback *recordstore.Store[domain.Feedback], logger *slog.Logger) ports.FeedbackSvc {
	return &feedbackServiceImpl{feedback: feedback, logger: logger}
}

var _ ports.FeedbackSvc = (*feedbackServiceImpl)(nil)

func (s *feedbackServiceImpl) Submit(ctx context.Context, accountID int32, message string) error {
	if message == "" {
		return fmt.Errorf("empty feedback: %w", apperrors.ErrValidation)
	}
	unlock := s.feedback.LockFile(true)
	defer unlock()

	if _, err := s.feedback.Append(domain.Feedback{AccountID: accountID, Message: message}); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	s.logger.Info("feedback submitted", slog.Int64("account_id", int64(accountID)))
	return nil
}

func (s *feedbackServiceImpl) List(ctx context.Context) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := s.feedback.SnapshotScan(func(_ int64, f domain.Feedback) bool {
		out = append(out, f)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}
