package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para enviar reportes de feedback por correo.
type Sender interface {
	SendFeedback(ctx context.Context, userID, userEmail, feedback string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendFeedback(_ context.Context, _ string, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
