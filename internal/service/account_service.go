package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/pkg/api"
)

// AccountService implements the Connect AccountService: onboarding, login,
// roster and profiles.
type AccountService struct {
	principals
	engine     *engine.Engine
	jwtManager *auth.JWTManager
}

var _ api.AccountServiceHandler = (*AccountService)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(eng *engine.Engine, resolver *auth.Resolver, jwtManager *auth.JWTManager) *AccountService {
	return &AccountService{
		principals: principals{resolver: resolver},
		engine:     eng,
		jwtManager: jwtManager,
	}
}

// RegisterOrganisation creates an organisation and its first admin, and
// signs the admin in.
func (s *AccountService) RegisterOrganisation(ctx context.Context, req *connect.Request[api.RegisterOrganisationRequest]) (*connect.Response[api.RegisterOrganisationResponse], error) {
	slog.Info("RegisterOrganisation request received",
		"organisation", req.Msg.OrganisationName,
		"username", req.Msg.Username,
	)

	org, admin, err := s.engine.RegisterOrganisation(ctx, engine.Registration{
		OrganisationName: req.Msg.OrganisationName,
		Username:         req.Msg.Username,
		Email:            req.Msg.Email,
		Password:         req.Msg.Password,
	})
	if err != nil {
		return nil, toConnectError("RegisterOrganisation", err)
	}

	token, err := s.jwtManager.Generate(admin)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", admin.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Info("Organisation registered", "organisation_id", org.ID, "user_id", admin.UserID)
	return connect.NewResponse(&api.RegisterOrganisationResponse{
		Organisation: toAPIOrganisation(org),
		User:         toAPIUser(admin),
		Token:        token,
	}), nil
}

// RegisterUser adds a user to the caller's organisation.
func (s *AccountService) RegisterUser(ctx context.Context, req *connect.Request[api.RegisterUserRequest]) (*connect.Response[api.RegisterUserResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RegisterUser request received", "user_id", p.UserID, "username", req.Msg.Username, "role", req.Msg.Role)

	user, err := s.engine.RegisterUser(ctx, p, engine.NewUser{
		Username: req.Msg.Username,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
		Role:     req.Msg.Role,
	})
	if err != nil {
		return nil, toConnectError("RegisterUser", err)
	}

	slog.Info("User registered", "user_id", user.UserID, "organisation_id", user.OrganisationID)
	return connect.NewResponse(&api.RegisterUserResponse{User: toAPIUser(user)}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AccountService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, firstLogin, err := s.engine.Login(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError("Login", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Info("User logged in successfully", "user_id", user.UserID, "first_login", firstLogin)
	return connect.NewResponse(&api.LoginResponse{
		Token:      token,
		User:       toAPIUser(user),
		FirstLogin: firstLogin,
	}), nil
}

// ListRoster returns the profiles the caller may see.
func (s *AccountService) ListRoster(ctx context.Context, req *connect.Request[api.ListRosterRequest]) (*connect.Response[api.ListRosterResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.engine.ListRoster(ctx, p)
	if err != nil {
		return nil, toConnectError("ListRoster", err)
	}

	slog.Debug("Roster listed", "user_id", p.UserID, "count", len(users))
	return connect.NewResponse(&api.ListRosterResponse{Users: toAPIUsers(users)}), nil
}

// GetProfile returns a user's info, lists, ledger history and balance.
func (s *AccountService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	p, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetProfile request received", "user_id", p.UserID, "target_user_id", req.Msg.UserID)

	profile, err := s.engine.GetProfile(ctx, p, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("GetProfile", err)
	}

	return connect.NewResponse(&api.GetProfileResponse{
		User:    toAPIUser(profile.User),
		Lists:   toAPILists(profile.Lists),
		History: toAPIEntries(profile.History),
		Balance: money(profile.Balance),
	}), nil
}
