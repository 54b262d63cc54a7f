package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
)

// MessageRepository define el contrato de persistencia para mensajes de un chat.
type MessageRepository interface {
	Append(ctx context.Context, userID, chatID string, msg domain.Message) error
	ListByChat(ctx context.Context, userID, chatID string) ([]domain.Message, error)
}

// FsMessageRepository implementa MessageRepository sobre users/{uid}/chats/{cid}/messages.
type FsMessageRepository struct {
	client *firestore.Client
}

func NewFsMessageRepository(client *firestore.Client) *FsMessageRepository {
	return &FsMessageRepository{client: client}
}

func (r *FsMessageRepository) chat(userID, chatID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID).Collection("chats").Doc(chatID)
}

// Append agrega el mensaje y refresca updated_at del chat para el orden del listado.
func (r *FsMessageRepository) Append(ctx context.Context, userID, chatID string, msg domain.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	chatRef := r.chat(userID, chatID)
	if _, _, err := chatRef.Collection("messages").Add(ctx, msg); err != nil {
		return err
	}

	_, err := chatRef.Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	return mapNotFound(err)
}

// ListByChat devuelve los mensajes ordenados por timestamp ascendente.
func (r *FsMessageRepository) ListByChat(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	snaps, err := r.chat(userID, chatID).Collection("messages").
		OrderBy("timestamp", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(snaps))
	for _, snap := range snaps {
		var m domain.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.Ref.ID
		messages = append(messages, m)
	}
	return messages, nil
}
