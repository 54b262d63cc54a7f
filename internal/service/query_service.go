package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/llm"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

// breedSystemPrompt es la instrucción fija para el asistente de razas de perros.
const breedSystemPrompt = "You are a helpful AI assistant specializing in dog breed recommendations. " +
	"You provide concise, accurate information about dog breeds, their characteristics, care requirements, " +
	"and suitability for different lifestyles. If users don't like a suggested breed, offer alternatives. " +
	"Keep responses helpful and to the point. Maintain conversation context and refer to previous messages when relevant."

const chatTitleMaxLen = 50

var (
	ErrEmptyQuery         = errors.New("query is required")
	ErrModelNotConfigured = errors.New("ai model not initialized")
)

// QueryResult es la salida del pipeline: la respuesta del modelo y el chat resuelto.
type QueryResult struct {
	Response string `json:"response"`
	ChatID   string `json:"chatId"`
}

// QueryService orquesta el pipeline conversacional: arma el prompt con el
// historial, invoca el modelo y persiste el par de turnos (user, bot).
type QueryService struct {
	llmClient llm.LLMClient
	chats     repository.ChatRepository
	messages  repository.MessageRepository
}

func NewQueryService(llmClient llm.LLMClient, chats repository.ChatRepository, messages repository.MessageRepository) *QueryService {
	return &QueryService{
		llmClient: llmClient,
		chats:     chats,
		messages:  messages,
	}
}

// RunQuery procesa una consulta. Con chatID vacío crea un chat nuevo cuyo
// título es la consulta truncada; con chatID presente reconstruye el contexto
// desde los mensajes previos en orden de timestamp.
func (s *QueryService) RunQuery(ctx context.Context, userID, chatID, text string) (QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QueryResult{}, ErrEmptyQuery
	}
	if s == nil || s.llmClient == nil {
		return QueryResult{}, ErrModelNotConfigured
	}

	var conversationContext string
	if chatID != "" {
		previous, err := s.messages.ListByChat(ctx, userID, chatID)
		if err != nil {
			return QueryResult{}, fmt.Errorf("list chat messages: %w", err)
		}
		conversationContext = renderContext(previous)
	}

	prompt := breedSystemPrompt + conversationContext + "\nUser question: " + text

	response, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return QueryResult{}, fmt.Errorf("generate response: %w", err)
	}

	if chatID == "" {
		title := chatTitle(text)
		chatID, err = s.chats.Create(ctx, userID, domain.Chat{
			Title:        title,
			FirstMessage: title,
		})
		if err != nil {
			return QueryResult{}, fmt.Errorf("create chat: %w", err)
		}
	}

	// Las dos escrituras no son atómicas: un fallo entre ambas deja el turno
	// del usuario sin respuesta persistida.
	if err := s.messages.Append(ctx, userID, chatID, domain.Message{Sender: domain.SenderUser, Text: text}); err != nil {
		return QueryResult{}, fmt.Errorf("persist user message: %w", err)
	}
	if err := s.messages.Append(ctx, userID, chatID, domain.Message{Sender: domain.SenderBot, Text: response}); err != nil {
		return QueryResult{}, fmt.Errorf("persist bot message: %w", err)
	}

	return QueryResult{Response: response, ChatID: chatID}, nil
}

// renderContext formatea el historial como bloque de conversación previa.
func renderContext(messages []domain.Message) string {
	if len(messages) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nPrevious conversation:\n")
	for _, m := range messages {
		label := "Assistant"
		if m.Sender == domain.SenderUser {
			label = "User"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, m.Text))
	}
	sb.WriteString("\n")
	return sb.String()
}

// chatTitle trunca la consulta a 50 caracteres con elipsis si hace falta.
func chatTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= chatTitleMaxLen {
		return text
	}
	return string(runes[:chatTitleMaxLen]) + "..."
}
