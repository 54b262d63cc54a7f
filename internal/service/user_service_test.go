package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vincentbmw/PawspectiveProject/internal/domain"
)

func newUserServiceForTest(users *fakeUserRepo, identity *fakeIdentityRepo, images *fakeImageStore) *UserService {
	return NewUserService(zap.NewNop(), users, newMemChatRepo(), newMemMessageRepo(), identity, images)
}

func pngPayload(size int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, size))
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = domain.User{ID: "u1", Nickname: "vin", Fullname: "Vincent", Email: "vin@example.com"}
	svc := newUserServiceForTest(users, &fakeIdentityRepo{provider: "password"}, &fakeImageStore{})

	profile, err := svc.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !profile.CanChangePassword {
		t.Fatalf("password provider must allow password change")
	}
	if profile.ProfilePicture != domain.DefaultProfilePicture {
		t.Fatalf("expected default picture, got %q", profile.ProfilePicture)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newUserServiceForTest(newFakeUserRepo(), &fakeIdentityRepo{}, &fakeImageStore{})

	if _, err := svc.GetProfile(context.Background(), "nope"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	svc := newUserServiceForTest(newFakeUserRepo(), &fakeIdentityRepo{}, &fakeImageStore{})

	_, err := svc.CreateProfile(context.Background(), "u1", domain.User{Nickname: " ", Fullname: "V", Email: "v@e.com"})
	if !errors.Is(err, ErrMissingProfileFields) {
		t.Fatalf("expected ErrMissingProfileFields, got %v", err)
	}
}

func TestUpdateProfile_AllowList(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = domain.User{ID: "u1", Nickname: "old", Email: "v@e.com"}
	svc := newUserServiceForTest(users, &fakeIdentityRepo{provider: "google.com"}, &fakeImageStore{})

	profile, err := svc.UpdateProfile(context.Background(), "u1", map[string]interface{}{
		"nickname":   "new",
		"created_at": "hax",
		"is_admin":   true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Nickname != "new" {
		t.Fatalf("expected nickname updated, got %q", profile.Nickname)
	}
	if _, ok := users.lastUpdates["is_admin"]; ok {
		t.Fatalf("non-allow-listed field must be dropped")
	}
	if _, ok := users.lastUpdates["created_at"]; ok {
		t.Fatalf("created_at must not be updatable")
	}
	if profile.CanChangePassword {
		t.Fatalf("external provider must not allow password change")
	}
}

func TestUpdateProfile_NoValidFields(t *testing.T) {
	svc := newUserServiceForTest(newFakeUserRepo(), &fakeIdentityRepo{}, &fakeImageStore{})

	_, err := svc.UpdateProfile(context.Background(), "u1", map[string]interface{}{"role": "admin"})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestUploadProfilePicture(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = domain.User{ID: "u1", Email: "v@e.com"}
	images := &fakeImageStore{}
	svc := newUserServiceForTest(users, &fakeIdentityRepo{}, images)

	url, err := svc.UploadProfilePicture(context.Background(), "u1", pngPayload(128))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if images.uploads != 1 {
		t.Fatalf("expected one upload, got %d", images.uploads)
	}
	if !strings.HasPrefix(images.lastObject, "profile_pictures/u1_") || !strings.HasSuffix(images.lastObject, ".png") {
		t.Fatalf("unexpected object name %q", images.lastObject)
	}
	if images.lastType != "image/png" {
		t.Fatalf("unexpected content type %q", images.lastType)
	}
	if users.users["u1"].ProfilePicture != url {
		t.Fatalf("profile_picture not updated, got %q", users.users["u1"].ProfilePicture)
	}
}

func TestUploadProfilePicture_RejectsWithoutStorageCall(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = domain.User{ID: "u1"}
	images := &fakeImageStore{}
	svc := newUserServiceForTest(users, &fakeIdentityRepo{}, images)

	cases := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"bad prefix", "data:text/plain;base64,aGk=", ErrInvalidImagePayload},
		{"bad subtype", "data:image/gif;base64,aGk=", ErrUnsupportedImageType},
		{"bad base64", "data:image/png;base64,$$$", ErrInvalidImageData},
		{"too large", pngPayload(maxImageBytes + 1), ErrImageTooLarge},
	}
	for _, tc := range cases {
		if _, err := svc.UploadProfilePicture(context.Background(), "u1", tc.payload); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
	if images.uploads != 0 {
		t.Fatalf("validation failures must not touch object storage")
	}
	if users.users["u1"].ProfilePicture != "" {
		t.Fatalf("profile must stay untouched on validation failure")
	}
}

func TestUploadProfilePicture_StorageFailureKeepsProfile(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = domain.User{ID: "u1", ProfilePicture: "https://old.example/pic.png"}
	images := &fakeImageStore{uploadErr: errors.New("bucket unavailable")}
	svc := newUserServiceForTest(users, &fakeIdentityRepo{}, images)

	if _, err := svc.UploadProfilePicture(context.Background(), "u1", pngPayload(64)); err == nil {
		t.Fatalf("expected error")
	}
	if users.users["u1"].ProfilePicture != "https://old.example/pic.png" {
		t.Fatalf("prior picture must remain on storage failure")
	}
}

func TestChangePassword_ProviderGating(t *testing.T) {
	identity := &fakeIdentityRepo{provider: "google.com"}
	svc := newUserServiceForTest(newFakeUserRepo(), identity, &fakeImageStore{})

	err := svc.ChangePassword(context.Background(), "u1", "secret123")
	if !errors.Is(err, ErrPasswordProviderOnly) {
		t.Fatalf("expected ErrPasswordProviderOnly, got %v", err)
	}
	if identity.passwordCalls != 0 {
		t.Fatalf("identity password update must not be invoked for external providers")
	}
}

func TestChangePassword(t *testing.T) {
	identity := &fakeIdentityRepo{provider: "password"}
	svc := newUserServiceForTest(newFakeUserRepo(), identity, &fakeImageStore{})

	if err := svc.ChangePassword(context.Background(), "u1", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), "u1", "secret123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if identity.updatedPassword != "secret123" {
		t.Fatalf("expected password forwarded to identity service")
	}
}

func TestStats(t *testing.T) {
	users := newFakeUserRepo()
	chats := newMemChatRepo()
	messages := newMemMessageRepo()
	svc := NewUserService(zap.NewNop(), users, chats, messages, &fakeIdentityRepo{}, &fakeImageStore{})

	c1, _ := chats.Create(context.Background(), "u1", domain.Chat{Title: "a"})
	c2, _ := chats.Create(context.Background(), "u1", domain.Chat{Title: "b"})
	messages.byChat["u1/"+c1] = []domain.Message{{Text: "1"}, {Text: "2"}}
	messages.byChat["u1/"+c2] = []domain.Message{{Text: "3"}}

	stats, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalChats != 2 || stats.TotalMessages != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.LatestChat == nil {
		t.Fatalf("expected latest chat")
	}
}
