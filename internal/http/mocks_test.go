package http

import (
	"context"
	"fmt"
	"time"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

type mockChatRepo struct {
	chats  map[string][]domain.Chat
	nextID int
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{chats: make(map[string][]domain.Chat)}
}

func (m *mockChatRepo) Create(_ context.Context, userID string, chat domain.Chat) (string, error) {
	m.nextID++
	chat.ID = fmt.Sprintf("chat-%d", m.nextID)
	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	m.chats[userID] = append(m.chats[userID], chat)
	return chat.ID, nil
}

func (m *mockChatRepo) ListByUser(_ context.Context, userID string) ([]domain.Chat, error) {
	return m.chats[userID], nil
}

func (m *mockChatRepo) Delete(_ context.Context, userID, chatID string) error {
	list := m.chats[userID]
	for i, c := range list {
		if c.ID == chatID {
			m.chats[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockMessageRepo struct {
	byChat map[string][]domain.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{byChat: make(map[string][]domain.Message)}
}

func (m *mockMessageRepo) key(userID, chatID string) string {
	return userID + "/" + chatID
}

func (m *mockMessageRepo) Append(_ context.Context, userID, chatID string, msg domain.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	key := m.key(userID, chatID)
	msg.ID = fmt.Sprintf("msg-%d", len(m.byChat[key])+1)
	m.byChat[key] = append(m.byChat[key], msg)
	return nil
}

func (m *mockMessageRepo) ListByChat(_ context.Context, userID, chatID string) ([]domain.Message, error) {
	return m.byChat[m.key(userID, chatID)], nil
}

type mockUserRepo struct {
	users map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, userID string, user domain.User) error {
	user.ID = userID
	m.users[userID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID string) (domain.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) Update(_ context.Context, userID string, fields map[string]interface{}) error {
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["nickname"].(string); ok {
		user.Nickname = v
	}
	if v, ok := fields["profile_picture"].(string); ok {
		user.ProfilePicture = v
	}
	m.users[userID] = user
	return nil
}

type mockIdentityRepo struct {
	provider      string
	uid           string
	verifyErr     error
	passwordCalls int
}

func (m *mockIdentityRepo) ProviderID(_ context.Context, _ string) (string, error) {
	return m.provider, nil
}

func (m *mockIdentityRepo) UpdatePassword(_ context.Context, _, _ string) error {
	m.passwordCalls++
	return nil
}

func (m *mockIdentityRepo) VerifyIDToken(_ context.Context, _ string) (string, error) {
	if m.verifyErr != nil {
		return "", m.verifyErr
	}
	return m.uid, nil
}

type mockImageStore struct {
	uploads int
}

func (m *mockImageStore) Upload(_ context.Context, objectName string, _ []byte, _ string) (string, error) {
	m.uploads++
	return "https://storage.googleapis.com/bucket/" + objectName, nil
}

type mockFeedbackRepo struct {
	saved []domain.Feedback
}

func (m *mockFeedbackRepo) Create(_ context.Context, fb domain.Feedback) (string, error) {
	m.saved = append(m.saved, fb)
	return "fb-1", nil
}

type mockSender struct {
	sent int
}

func (m *mockSender) SendFeedback(_ context.Context, _, _, _ string) error {
	m.sent++
	return nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error {
	return m.err
}
