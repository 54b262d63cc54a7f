package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

const previewMaxLen = 100

var ErrChatNotFound = errors.New("chat not found")

// ChatPreview es la vista de un chat para el listado del cliente móvil.
type ChatPreview struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Preview      string    `json:"preview"`
	LastMessage  *string   `json:"lastMessage"`
	LastSender   *string   `json:"lastSender"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChatService encapsula el manejo de chats y sus mensajes.
type ChatService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	queries  *QueryService
}

func NewChatService(chats repository.ChatRepository, messages repository.MessageRepository, queries *QueryService) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
		queries:  queries,
	}
}

// ListChats devuelve los chats del usuario con preview del último mensaje.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]ChatPreview, error) {
	chats, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	previews := make([]ChatPreview, 0, len(chats))
	for _, chat := range chats {
		messages, err := s.messages.ListByChat(ctx, userID, chat.ID)
		if err != nil {
			return nil, fmt.Errorf("list messages for chat %s: %w", chat.ID, err)
		}

		preview := ChatPreview{
			ID:           chat.ID,
			Title:        chat.Title,
			MessageCount: len(messages),
			CreatedAt:    chat.CreatedAt,
			UpdatedAt:    chat.UpdatedAt,
		}
		if preview.Title == "" {
			preview.Title = "New Chat"
		}

		if len(messages) > 0 {
			last := messages[len(messages)-1]
			preview.Preview = truncatePreview(last.Text)
			preview.LastMessage = &last.Text
			preview.LastSender = &last.Sender
		} else if chat.FirstMessage != "" {
			preview.Preview = chat.FirstMessage
		} else {
			preview.Preview = "New Chat"
		}

		previews = append(previews, preview)
	}
	return previews, nil
}

// CreateChat crea un chat vacío y devuelve su id.
func (s *ChatService) CreateChat(ctx context.Context, userID, title string) (string, error) {
	title = strings.TrimSpace(title)
	chatID, err := s.chats.Create(ctx, userID, domain.Chat{Title: title, FirstMessage: title})
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	return chatID, nil
}

// DeleteChat elimina el chat y todos sus mensajes.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if err := s.chats.Delete(ctx, userID, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("delete chat: %w", err)
	}
	return nil
}

// ListMessages devuelve los mensajes del chat en orden ascendente.
func (s *ChatService) ListMessages(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	messages, err := s.messages.ListByChat(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// SendMessage corre el pipeline contra un chat existente.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, text string) (QueryResult, error) {
	return s.queries.RunQuery(ctx, userID, chatID, text)
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewMaxLen {
		return text
	}
	return string(runes[:previewMaxLen]) + "..."
}
