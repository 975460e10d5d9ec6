package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/storage"
)

// ProfileSource loads profiles by user id.
type ProfileSource interface {
	GetUserByID(ctx context.Context, id string) (*models.UserProfile, error)
}

// Resolver turns an authenticated user id into a Principal by reading the
// stored profile, so role and organisation changes apply immediately.
type Resolver struct {
	profiles ProfileSource
}

// NewResolver creates a resolver backed by profiles.
func NewResolver(profiles ProfileSource) *Resolver {
	return &Resolver{profiles: profiles}
}

// Resolve returns the principal for userID. An unknown user, or a profile
// with no organisation or role, is Unauthorized.
func (r *Resolver) Resolve(ctx context.Context, userID string) (models.Principal, error) {
	if userID == "" {
		return models.Principal{}, apierr.Unauthorized()
	}

	profile, err := r.profiles.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Principal{}, apierr.Unauthorized()
	}
	if err != nil {
		return models.Principal{}, apierr.Internal("failed to resolve principal", err)
	}

	principal := models.PrincipalFor(profile)
	if !principal.Resolved() {
		slog.Warn("Profile does not resolve to a principal", "user_id", userID)
		return models.Principal{}, apierr.Unauthorized()
	}
	return principal, nil
}
