package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
)

// UserRepository define el contrato de persistencia para perfiles de usuario.
type UserRepository interface {
	Create(ctx context.Context, userID string, user domain.User) error
	GetByID(ctx context.Context, userID string) (domain.User, error)
	Update(ctx context.Context, userID string, fields map[string]interface{}) error
}

// FsUserRepository implementa UserRepository sobre la colección users de Firestore.
type FsUserRepository struct {
	client *firestore.Client
}

func NewFsUserRepository(client *firestore.Client) *FsUserRepository {
	return &FsUserRepository{client: client}
}

func (r *FsUserRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID)
}

func (r *FsUserRepository) Create(ctx context.Context, userID string, user domain.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	_, err := r.doc(userID).Set(ctx, user)
	return err
}

func (r *FsUserRepository) GetByID(ctx context.Context, userID string) (domain.User, error) {
	snap, err := r.doc(userID).Get(ctx)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return domain.User{}, err
	}
	u.ID = snap.Ref.ID
	return u, nil
}

func (r *FsUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: "updated_at", Value: time.Now().UTC()})

	_, err := r.doc(userID).Update(ctx, updates)
	return mapNotFound(err)
}
