package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
	"github.com/mmynk/shoppinglist/internal/storage"
)

// DefaultCatalog is the starter catalog every new organisation receives,
// group name to item names.
var DefaultCatalog = map[string][]string{
	"fruit":             {"bananas", "apples", "oranges"},
	"vegetables":        {"peppers", "onion", "tomato", "lettuce"},
	"beans":             {"black beans", "navy beans"},
	"bread":             {"white bread", "whole wheat bread"},
	"grains":            {"white rice", "brown rice", "pasta", "whole wheat pasta"},
	"meat":              {"pork", "chicken", "rotisserie chicken", "ground beef"},
	"dairy":             {"cheese", "milk", "eggs"},
	"drinks":            {"coke", "sprite", "water"},
	"cleaning supplies": {"soap", "laundry detergent"},
	"other":             {"sugar"},
}

// Registration is the input of RegisterOrganisation.
type Registration struct {
	OrganisationName string
	Username         string
	Email            string
	Password         string
}

// NewUser is the input of RegisterUser.
type NewUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

// RegisterOrganisation creates an organisation, its first admin and the
// default catalog.
func (e *Engine) RegisterOrganisation(ctx context.Context, in Registration) (*models.Organisation, *models.UserProfile, error) {
	orgName := strings.TrimSpace(in.OrganisationName)
	username := strings.TrimSpace(in.Username)
	if orgName == "" || username == "" {
		return nil, nil, apierr.Validation("organisation name and username are required")
	}
	hash, err := e.hashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	if _, err := e.store.GetUserByUsername(ctx, username); err == nil {
		return nil, nil, apierr.Conflict("username %q is taken", username)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, classify("failed to check username", err)
	}

	org := &models.Organisation{Name: orgName, CreatedAt: e.now()}
	admin := &models.UserProfile{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    e.now(),
	}
	if err := e.store.CreateOrganisation(ctx, org, admin, DefaultCatalog); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, nil, apierr.Conflict("organisation %q already exists", orgName)
		}
		return nil, nil, classify("failed to create organisation", err)
	}
	return org, admin, nil
}

// RegisterUser adds a user to the admin's organisation. The new user is
// flagged for first login.
func (e *Engine) RegisterUser(ctx context.Context, p models.Principal, in NewUser) (*models.UserProfile, error) {
	if err := policy.Require(p, policy.RegisterUser, policy.Org(p.OrganisationID)); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apierr.Validation("username is required")
	}
	role := models.RoleMember
	if in.Role != "" {
		var err error
		if role, err = models.ParseRole(in.Role); err != nil {
			return nil, apierr.Validation("%v", err)
		}
	}
	hash, err := e.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.UserProfile{
		Username:       username,
		Email:          strings.TrimSpace(in.Email),
		PasswordHash:   hash,
		OrganisationID: p.OrganisationID,
		Role:           role,
		FirstLogin:     true,
		CreatedAt:      e.now(),
	}
	if err := e.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apierr.Conflict("username %q is taken", username)
		}
		return nil, classify("failed to create user", err)
	}
	return user, nil
}

// Login checks credentials and returns the profile. firstLogin reports
// whether this was the account's first sign-in; the flag is cleared.
func (e *Engine) Login(ctx context.Context, username, password string) (user *models.UserProfile, firstLogin bool, err error) {
	user, err = e.authn.Authenticate(ctx, strings.TrimSpace(username), password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, false, apierr.Unauthenticated(auth.ErrInvalidCredentials.Error())
	}
	if err != nil {
		return nil, false, apierr.Internal("failed to authenticate", err)
	}

	firstLogin = user.FirstLogin
	if firstLogin {
		if err := e.store.MarkLoggedIn(ctx, user.UserID); err != nil {
			return nil, false, classify("failed to record login", err)
		}
		user.FirstLogin = false
	}
	return user, firstLogin, nil
}

func (e *Engine) hashPassword(password string) (string, error) {
	hash, err := e.authn.HashCredential(password)
	if errors.Is(err, auth.ErrWeakPassword) {
		return "", apierr.Validation("%v", err)
	}
	if err != nil {
		return "", apierr.Internal("failed to hash password", fmt.Errorf("hash credential: %w", err))
	}
	return hash, nil
}
