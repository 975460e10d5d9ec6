package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/storage"
)

type fakeUsers map[string]*models.UserProfile

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.UserProfile, error) {
	for _, u := range f {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
}

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.UserProfile, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

type brokenUsers struct{}

func (brokenUsers) GetUserByID(context.Context, string) (*models.UserProfile, error) {
	return nil, errors.New("disk on fire")
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.UserProfile{UserID: "u1", Username: "alice"}

	token, err := manager.Generate(user)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "alice", claims.Username)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other-secret", time.Hour).Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewJWTManager("test-secret", -time.Minute).Generate(user)
		require.NoError(t, err)
		_, err = manager.Validate(expired)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := manager.Validate("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	require.Equal(t, TokenIssuer, claims.Issuer)
	require.Equal(t, "u1", claims.Subject)

	sign := func(method jwt.SigningMethod, c *Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, c).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}
	valid := func() *Claims {
		now := time.Now()
		return &Claims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				Subject:   "u1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{"other signing method", func() string { return sign(jwt.SigningMethodHS512, valid()) }},
		{"foreign issuer", func() string {
			c := valid()
			c.Issuer = "someone-else"
			return sign(jwt.SigningMethodHS256, c)
		}},
		{"subject mismatch", func() string {
			c := valid()
			c.Subject = "u2"
			return sign(jwt.SigningMethodHS256, c)
		}},
		{"missing user id", func() string {
			c := valid()
			c.UserID, c.Subject = "", ""
			return sign(jwt.SigningMethodHS256, c)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token())
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("hand-signed token with the right shape", func(t *testing.T) {
		got, err := manager.Validate(sign(jwt.SigningMethodHS256, valid()))
		require.NoError(t, err)
		require.Equal(t, "u1", got.UserID)
	})
}

func TestPasswordAuthenticator(t *testing.T) {
	users := fakeUsers{}
	authn := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)

	_, err := authn.HashCredential("short")
	require.ErrorIs(t, err, ErrWeakPassword)

	hash, err := authn.HashCredential("correct horse")
	require.NoError(t, err)
	users["u1"] = &models.UserProfile{UserID: "u1", Username: "alice", PasswordHash: hash}

	got, err := authn.Authenticate(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)

	_, err = authn.Authenticate(context.Background(), "alice", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authn.Authenticate(context.Background(), "bob", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolver(t *testing.T) {
	users := fakeUsers{
		"admin":  {UserID: "admin", Username: "root", OrganisationID: "org", Role: models.RoleAdmin},
		"orphan": {UserID: "orphan", Username: "orphan", Role: models.RoleMember},
	}
	resolver := NewResolver(users)
	ctx := context.Background()

	p, err := resolver.Resolve(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, models.Principal{UserID: "admin", Username: "root", OrganisationID: "org", Role: models.RoleAdmin}, p)

	tests := []struct {
		name   string
		userID string
		kind   apierr.Kind
	}{
		{"empty id", "", apierr.KindUnauthorized},
		{"unknown user", "ghost", apierr.KindUnauthorized},
		{"no organisation", "orphan", apierr.KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, tt.userID)
			require.True(t, apierr.Is(err, tt.kind), "got %v", err)
		})
	}

	_, err = NewResolver(brokenUsers{}).Resolve(ctx, "admin")
	require.True(t, apierr.Is(err, apierr.KindInternal))
}
