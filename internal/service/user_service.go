package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
	"github.com/vincentbmw/PawspectiveProject/internal/repository"
	"github.com/vincentbmw/PawspectiveProject/internal/storage"
)

const passwordProvider = "password"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrMissingProfileFields = errors.New("missing required fields: nickname, fullname, email")
	ErrNoFieldsToUpdate     = errors.New("no valid fields to update")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrPasswordProviderOnly = errors.New("password change not available for external sign-in users")
)

// profileUpdateFields es el allow-list de campos editables del perfil.
var profileUpdateFields = map[string]bool{
	"nickname":        true,
	"fullname":        true,
	"email":           true,
	"profile_picture": true,
}

// Profile es la vista del perfil que consume el cliente móvil.
type Profile struct {
	ID                string    `json:"id"`
	Nickname          string    `json:"nickname"`
	Fullname          string    `json:"fullname"`
	Email             string    `json:"email"`
	ProfilePicture    string    `json:"profile_picture"`
	LoginProvider     string    `json:"login_provider"`
	CanChangePassword bool      `json:"can_change_password"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Stats agrega conteos de chats y mensajes del usuario.
type Stats struct {
	TotalChats    int          `json:"total_chats"`
	TotalMessages int          `json:"total_messages"`
	LatestChat    *domain.Chat `json:"latest_chat"`
}

// UserService encapsula la lógica de perfiles, foto de perfil y password.
type UserService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	chats    repository.ChatRepository
	messages repository.MessageRepository
	identity repository.IdentityRepository
	images   storage.ImageStore
}

func NewUserService(
	logger *zap.Logger,
	users repository.UserRepository,
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	identity repository.IdentityRepository,
	images storage.ImageStore,
) *UserService {
	return &UserService{
		logger:   logger,
		users:    users,
		chats:    chats,
		messages: messages,
		identity: identity,
		images:   images,
	}
}

// GetProfile devuelve el perfil con el proveedor de login resuelto via Auth.
func (s *UserService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("get user: %w", err)
	}

	provider := s.lookupProvider(ctx, userID)
	return s.toProfile(user, provider), nil
}

// CreateProfile crea el documento del usuario con el id del path.
func (s *UserService) CreateProfile(ctx context.Context, userID string, user domain.User) (domain.User, error) {
	user.Nickname = strings.TrimSpace(user.Nickname)
	user.Fullname = strings.TrimSpace(user.Fullname)
	user.Email = strings.TrimSpace(user.Email)
	if user.Nickname == "" || user.Fullname == "" || user.Email == "" {
		return domain.User{}, ErrMissingProfileFields
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = domain.DefaultProfilePicture
	}

	if err := s.users.Create(ctx, userID, user); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = userID
	return user, nil
}

// UpdateProfile aplica únicamente los campos del allow-list y devuelve el perfil actualizado.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (Profile, error) {
	updates := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if profileUpdateFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return Profile{}, ErrNoFieldsToUpdate
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("update user: %w", err)
	}

	return s.GetProfile(ctx, userID)
}

// UploadProfilePicture valida el payload, sube la imagen y actualiza el perfil.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID, imageData string) (string, error) {
	subtype, data, err := parseImageDataURL(imageData)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("profile_pictures/%s_%s.%s", userID, strings.ReplaceAll(uuid.NewString(), "-", ""), subtype)
	url, err := s.images.Upload(ctx, objectName, data, "image/"+subtype)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if err := s.users.Update(ctx, userID, map[string]interface{}{"profile_picture": url}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("update profile picture: %w", err)
	}
	return url, nil
}

// DeleteProfilePicture restaura la foto de perfil por defecto.
func (s *UserService) DeleteProfilePicture(ctx context.Context, userID string) (string, error) {
	if err := s.users.Update(ctx, userID, map[string]interface{}{"profile_picture": domain.DefaultProfilePicture}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("reset profile picture: %w", err)
	}
	return domain.DefaultProfilePicture, nil
}

// ChangePassword sólo aplica a usuarios con proveedor password.
func (s *UserService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	provider, err := s.identity.ProviderID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get login provider: %w", err)
	}
	if provider != passwordProvider {
		return ErrPasswordProviderOnly
	}

	if err := s.identity.UpdatePassword(ctx, userID, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Stats suma chats y mensajes del usuario para la pantalla de perfil.
func (s *UserService) Stats(ctx context.Context, userID string) (Stats, error) {
	chats, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("list chats: %w", err)
	}

	stats := Stats{TotalChats: len(chats)}
	for _, chat := range chats {
		messages, err := s.messages.ListByChat(ctx, userID, chat.ID)
		if err != nil {
			return Stats{}, fmt.Errorf("list messages for chat %s: %w", chat.ID, err)
		}
		stats.TotalMessages += len(messages)
	}
	if len(chats) > 0 {
		latest := chats[0]
		stats.LatestChat = &latest
	}
	return stats, nil
}

func (s *UserService) lookupProvider(ctx context.Context, userID string) string {
	if s.identity == nil {
		return ""
	}
	provider, err := s.identity.ProviderID(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("provider lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return ""
	}
	return provider
}

func (s *UserService) toProfile(user domain.User, provider string) Profile {
	picture := user.ProfilePicture
	if picture == "" {
		picture = domain.DefaultProfilePicture
	}
	return Profile{
		ID:                user.ID,
		Nickname:          user.Nickname,
		Fullname:          user.Fullname,
		Email:             user.Email,
		ProfilePicture:    picture,
		LoginProvider:     provider,
		CanChangePassword: provider == passwordProvider,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}
