package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
)

// FeedbackRepository define el contrato de persistencia para feedback de usuarios.
type FeedbackRepository interface {
	Create(ctx context.Context, fb domain.Feedback) (string, error)
}

// FsFeedbackRepository implementa FeedbackRepository sobre la colección feedback.
type FsFeedbackRepository struct {
	client *firestore.Client
}

func NewFsFeedbackRepository(client *firestore.Client) *FsFeedbackRepository {
	return &FsFeedbackRepository{client: client}
}

func (r *FsFeedbackRepository) Create(ctx context.Context, fb domain.Feedback) (string, error) {
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}
	ref, _, err := r.client.Collection("feedback").Add(ctx, fb)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}
