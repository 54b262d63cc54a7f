package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
)

// memChatRepo es un ChatRepository en memoria para tests.
type memChatRepo struct {
	chats  map[string][]domain.Chat
	nextID int
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: make(map[string][]domain.Chat)}
}

func (m *memChatRepo) Create(_ context.Context, userID string, chat domain.Chat) (string, error) {
	m.nextID++
	chat.ID = fmt.Sprintf("chat-%d", m.nextID)
	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	m.chats[userID] = append(m.chats[userID], chat)
	return chat.ID, nil
}

func (m *memChatRepo) ListByUser(_ context.Context, userID string) ([]domain.Chat, error) {
	return m.chats[userID], nil
}

func (m *memChatRepo) Delete(_ context.Context, userID, chatID string) error {
	list := m.chats[userID]
	for i, c := range list {
		if c.ID == chatID {
			m.chats[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memMessageRepo es un MessageRepository en memoria para tests.
type memMessageRepo struct {
	byChat map[string][]domain.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{byChat: make(map[string][]domain.Message)}
}

func (m *memMessageRepo) key(userID, chatID string) string {
	return userID + "/" + chatID
}

func (m *memMessageRepo) Append(_ context.Context, userID, chatID string, msg domain.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	msg.ID = fmt.Sprintf("msg-%d", len(m.byChat[m.key(userID, chatID)])+1)
	m.byChat[m.key(userID, chatID)] = append(m.byChat[m.key(userID, chatID)], msg)
	return nil
}

func (m *memMessageRepo) ListByChat(_ context.Context, userID, chatID string) ([]domain.Message, error) {
	return m.byChat[m.key(userID, chatID)], nil
}

// fakeUserRepo es un UserRepository en memoria para tests.
type fakeUserRepo struct {
	users       map[string]domain.User
	lastUpdates map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, userID string, user domain.User) error {
	user.ID = userID
	f.users[userID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID string) (domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, userID string, fields map[string]interface{}) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	f.lastUpdates = fields
	if v, ok := fields["nickname"].(string); ok {
		user.Nickname = v
	}
	if v, ok := fields["fullname"].(string); ok {
		user.Fullname = v
	}
	if v, ok := fields["email"].(string); ok {
		user.Email = v
	}
	if v, ok := fields["profile_picture"].(string); ok {
		user.ProfilePicture = v
	}
	f.users[userID] = user
	return nil
}

// fakeIdentityRepo simula Firebase Auth.
type fakeIdentityRepo struct {
	provider        string
	updatedPassword string
	passwordCalls   int
	verifiedUID     string
}

func (f *fakeIdentityRepo) ProviderID(_ context.Context, _ string) (string, error) {
	return f.provider, nil
}

func (f *fakeIdentityRepo) UpdatePassword(_ context.Context, _ string, newPassword string) error {
	f.passwordCalls++
	f.updatedPassword = newPassword
	return nil
}

func (f *fakeIdentityRepo) VerifyIDToken(_ context.Context, _ string) (string, error) {
	return f.verifiedUID, nil
}

// fakeImageStore captura subidas al object storage.
type fakeImageStore struct {
	uploads    int
	lastObject string
	lastType   string
	uploadErr  error
}

func (f *fakeImageStore) Upload(_ context.Context, objectName string, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	f.lastObject = objectName
	f.lastType = contentType
	return "https://storage.googleapis.com/bucket/" + objectName, nil
}

// fakeFeedbackRepo captura feedback persistido.
type fakeFeedbackRepo struct {
	saved     []domain.Feedback
	createErr error
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb domain.Feedback) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.saved = append(f.saved, fb)
	return fmt.Sprintf("fb-%d", len(f.saved)), nil
}

// fakeSender captura correos enviados.
type fakeSender struct {
	sent    int
	lastErr error
}

func (f *fakeSender) SendFeedback(_ context.Context, _, _, _ string) error {
	f.sent++
	return f.lastErr
}
