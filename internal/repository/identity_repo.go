package repository

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// IdentityRepository expone las operaciones de identidad del proveedor externo.
type IdentityRepository interface {
	ProviderID(ctx context.Context, userID string) (string, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// FirebaseIdentityRepository implementa IdentityRepository sobre Firebase Auth.
type FirebaseIdentityRepository struct {
	auth *auth.Client
}

func NewFirebaseIdentityRepository(client *auth.Client) *FirebaseIdentityRepository {
	return &FirebaseIdentityRepository{auth: client}
}

// ProviderID devuelve el proveedor primario del usuario (password, google.com, etc.).
func (r *FirebaseIdentityRepository) ProviderID(ctx context.Context, userID string) (string, error) {
	rec, err := r.auth.GetUser(ctx, userID)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if len(rec.ProviderUserInfo) == 0 {
		return "", nil
	}
	return rec.ProviderUserInfo[0].ProviderID, nil
}

func (r *FirebaseIdentityRepository) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	params := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := r.auth.UpdateUser(ctx, userID, params); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// VerifyIDToken valida un ID token de Firebase y devuelve el uid del portador.
func (r *FirebaseIdentityRepository) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := r.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}
