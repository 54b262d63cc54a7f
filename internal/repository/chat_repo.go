package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
)

// ChatRepository define el contrato de persistencia para chats por usuario.
type ChatRepository interface {
	Create(ctx context.Context, userID string, chat domain.Chat) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Chat, error)
	Delete(ctx context.Context, userID, chatID string) error
}

// FsChatRepository implementa ChatRepository sobre users/{uid}/chats.
type FsChatRepository struct {
	client *firestore.Client
}

func NewFsChatRepository(client *firestore.Client) *FsChatRepository {
	return &FsChatRepository{client: client}
}

func (r *FsChatRepository) chats(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("chats")
}

func (r *FsChatRepository) Create(ctx context.Context, userID string, chat domain.Chat) (string, error) {
	now := time.Now().UTC()
	if chat.Title == "" {
		chat.Title = "New Chat"
	}
	if chat.FirstMessage == "" {
		chat.FirstMessage = chat.Title
	}
	chat.CreatedAt = now
	chat.UpdatedAt = now

	ref, _, err := r.chats(userID).Add(ctx, chat)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// ListByUser devuelve los chats ordenados por updated_at descendente.
func (r *FsChatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	snaps, err := r.chats(userID).OrderBy("updated_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	chats := make([]domain.Chat, 0, len(snaps))
	for _, snap := range snaps {
		var c domain.Chat
		if err := snap.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = snap.Ref.ID
		chats = append(chats, c)
	}
	return chats, nil
}

// Delete elimina primero los mensajes del chat y luego el documento del chat.
func (r *FsChatRepository) Delete(ctx context.Context, userID, chatID string) error {
	chatRef := r.chats(userID).Doc(chatID)

	snap, err := chatRef.Get(ctx)
	if err != nil {
		return mapNotFound(err)
	}
	if !snap.Exists() {
		return ErrNotFound
	}

	msgs, err := chatRef.Collection("messages").Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if _, err := msg.Ref.Delete(ctx); err != nil {
			return err
		}
	}

	_, err = chatRef.Delete(ctx)
	return err
}
