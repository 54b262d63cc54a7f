package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/email"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

var ErrEmptyFeedback = errors.New("feedback cannot be empty")

// FeedbackService persiste el feedback y lo reenvía por correo best-effort.
type FeedbackService struct {
	logger   *zap.Logger
	feedback repository.FeedbackRepository
	users    repository.UserRepository
	sender   email.Sender
}

func NewFeedbackService(
	logger *zap.Logger,
	feedback repository.FeedbackRepository,
	users repository.UserRepository,
	sender email.Sender,
) *FeedbackService {
	return &FeedbackService{
		logger:   logger,
		feedback: feedback,
		users:    users,
		sender:   sender,
	}
}

// SaveFeedback guarda el feedback; el envío de correo no bloquea el éxito de la operación.
func (s *FeedbackService) SaveFeedback(ctx context.Context, userID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyFeedback
	}

	if _, err := s.feedback.Create(ctx, domain.Feedback{UserID: userID, Text: text}); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}

	if s.sender == nil {
		return nil
	}

	userEmail := ""
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		userEmail = user.Email
	}
	if err := s.sender.SendFeedback(ctx, userID, userEmail, text); err != nil {
		s.logger.Warn("feedback email delivery failed", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}
