package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AccountServiceName is the fully-qualified name of the AccountService service.
const AccountServiceName = "shoppinglist.v1.AccountService"

const (
	AccountServiceRegisterOrganisationProcedure = "/shoppinglist.v1.AccountService/RegisterOrganisation"
	AccountServiceRegisterUserProcedure         = "/shoppinglist.v1.AccountService/RegisterUser"
	AccountServiceLoginProcedure                = "/shoppinglist.v1.AccountService/Login"
	AccountServiceListRosterProcedure           = "/shoppinglist.v1.AccountService/ListRoster"
	AccountServiceGetProfileProcedure           = "/shoppinglist.v1.AccountService/GetProfile"
)

// AccountServicePublicProcedures need no session token.
var AccountServicePublicProcedures = []string{
	AccountServiceRegisterOrganisationProcedure,
	AccountServiceLoginProcedure,
}

type RegisterOrganisationRequest struct {
	OrganisationName string `json:"organisation_name"`
	Username         string `json:"username"`
	Email            string `json:"email,omitempty"`
	Password         string `json:"password"`
}

type RegisterOrganisationResponse struct {
	Organisation Organisation `json:"organisation"`
	User         UserProfile  `json:"user"`
	Token        string       `json:"token"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterUserResponse struct {
	User UserProfile `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
	// FirstLogin is true when this was the account's first sign-in.
	FirstLogin bool `json:"first_login"`
}

type ListRosterRequest struct{}

type ListRosterResponse struct {
	Users []UserProfile `json:"users"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type GetProfileResponse struct {
	User    UserProfile    `json:"user"`
	Lists   []ShoppingList `json:"lists"`
	History []LedgerEntry  `json:"history"`
	Balance string         `json:"balance"`
}

// AccountServiceHandler is implemented by the account service.
type AccountServiceHandler interface {
	RegisterOrganisation(context.Context, *connect.Request[RegisterOrganisationRequest]) (*connect.Response[RegisterOrganisationResponse], error)
	RegisterUser(context.Context, *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	ListRoster(context.Context, *connect.Request[ListRosterRequest]) (*connect.Response[ListRosterResponse], error)
	GetProfile(context.Context, *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error)
}

// NewAccountServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AccountServiceRegisterOrganisationProcedure, connect.NewUnaryHandler(AccountServiceRegisterOrganisationProcedure, svc.RegisterOrganisation, opts...))
	mux.Handle(AccountServiceRegisterUserProcedure, connect.NewUnaryHandler(AccountServiceRegisterUserProcedure, svc.RegisterUser, opts...))
	mux.Handle(AccountServiceLoginProcedure, connect.NewUnaryHandler(AccountServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AccountServiceListRosterProcedure, connect.NewUnaryHandler(AccountServiceListRosterProcedure, svc.ListRoster, opts...))
	mux.Handle(AccountServiceGetProfileProcedure, connect.NewUnaryHandler(AccountServiceGetProfileProcedure, svc.GetProfile, opts...))
	return "/" + AccountServiceName + "/", mux
}

// AccountServiceClient is a client for the account service.
type AccountServiceClient struct {
	registerOrganisation *connect.Client[RegisterOrganisationRequest, RegisterOrganisationResponse]
	registerUser         *connect.Client[RegisterUserRequest, RegisterUserResponse]
	login                *connect.Client[LoginRequest, LoginResponse]
	listRoster           *connect.Client[ListRosterRequest, ListRosterResponse]
	getProfile           *connect.Client[GetProfileRequest, GetProfileResponse]
}

// NewAccountServiceClient constructs a client for the account service.
// baseURL is the server's URL without a trailing slash.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AccountServiceClient {
	opts = clientOptions(opts)
	return &AccountServiceClient{
		registerOrganisation: connect.NewClient[RegisterOrganisationRequest, RegisterOrganisationResponse](httpClient, baseURL+AccountServiceRegisterOrganisationProcedure, opts...),
		registerUser:         connect.NewClient[RegisterUserRequest, RegisterUserResponse](httpClient, baseURL+AccountServiceRegisterUserProcedure, opts...),
		login:                connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AccountServiceLoginProcedure, opts...),
		listRoster:           connect.NewClient[ListRosterRequest, ListRosterResponse](httpClient, baseURL+AccountServiceListRosterProcedure, opts...),
		getProfile:           connect.NewClient[GetProfileRequest, GetProfileResponse](httpClient, baseURL+AccountServiceGetProfileProcedure, opts...),
	}
}

func (c *AccountServiceClient) RegisterOrganisation(ctx context.Context, req *connect.Request[RegisterOrganisationRequest]) (*connect.Response[RegisterOrganisationResponse], error) {
	return c.registerOrganisation.CallUnary(ctx, req)
}

func (c *AccountServiceClient) RegisterUser(ctx context.Context, req *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error) {
	return c.registerUser.CallUnary(ctx, req)
}

func (c *AccountServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AccountServiceClient) ListRoster(ctx context.Context, req *connect.Request[ListRosterRequest]) (*connect.Response[ListRosterResponse], error) {
	return c.listRoster.CallUnary(ctx, req)
}

func (c *AccountServiceClient) GetProfile(ctx context.Context, req *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}
