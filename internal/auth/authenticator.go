package auth

import (
	"context"

	"github.com/mmynk/shoppinglist/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the engine or service layer code.
type Authenticator interface {
	// Authenticate verifies the user's credentials and returns the profile if successful.
	Authenticate(ctx context.Context, username, credential string) (*models.UserProfile, error)

	// HashCredential validates a new credential and returns the form to persist.
	HashCredential(credential string) (string, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
