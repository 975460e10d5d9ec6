package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/pkg/api"
)

const (
	publicProcedure  = "/test.v1.EchoService/Public"
	privateProcedure = "/test.v1.EchoService/Private"
)

type whoami struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func echoCaller(ctx context.Context, _ *connect.Request[whoami]) (*connect.Response[whoami], error) {
	return connect.NewResponse(&whoami{UserID: GetUserID(ctx), Username: GetUsername(ctx)}), nil
}

func newEchoServer(t *testing.T, jwtManager *auth.JWTManager) string {
	t.Helper()
	opts := []connect.HandlerOption{
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(RequireAuth(jwtManager, publicProcedure), LoggingInterceptor()),
	}
	mux := http.NewServeMux()
	mux.Handle(publicProcedure, connect.NewUnaryHandler(publicProcedure, echoCaller, opts...))
	mux.Handle(privateProcedure, connect.NewUnaryHandler(privateProcedure, echoCaller, opts...))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func call(t *testing.T, baseURL, procedure, authorization string) (*whoami, error) {
	t.Helper()
	client := connect.NewClient[whoami, whoami](http.DefaultClient, baseURL+procedure, connect.WithCodec(api.Codec{}))
	req := connect.NewRequest(&whoami{})
	if authorization != "" {
		req.Header().Set("Authorization", authorization)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	baseURL := newEchoServer(t, jwtManager)

	token, err := jwtManager.Generate(&models.UserProfile{UserID: "user-1", Username: "ann"})
	require.NoError(t, err)

	t.Run("public procedure needs no token", func(t *testing.T) {
		got, err := call(t, baseURL, publicProcedure, "")
		require.NoError(t, err)
		require.Empty(t, got.UserID)
	})

	t.Run("valid token populates the context", func(t *testing.T) {
		got, err := call(t, baseURL, privateProcedure, "Bearer "+token)
		require.NoError(t, err)
		require.Equal(t, "user-1", got.UserID)
		require.Equal(t, "ann", got.Username)
	})

	tests := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "not a bearer token", authorization: "Basic " + token},
		{name: "empty bearer token", authorization: "Bearer "},
		{name: "forged token", authorization: "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, baseURL, privateProcedure, tt.authorization)
			require.Error(t, err)
			require.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		})
	}
}

func TestResultClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  string
		level slog.Level
	}{
		{name: "success", err: nil, code: "ok", level: slog.LevelInfo},
		{name: "not found", err: connect.NewError(connect.CodeNotFound, errors.New("no list")), code: "not_found", level: slog.LevelWarn},
		{name: "denied", err: connect.NewError(connect.CodePermissionDenied, errors.New("no")), code: "permission_denied", level: slog.LevelWarn},
		{name: "internal", err: connect.NewError(connect.CodeInternal, errors.New("boom")), code: "internal", level: slog.LevelError},
		{name: "plain error", err: errors.New("boom"), code: "unknown", level: slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, codeOf(tt.err))
			require.Equal(t, tt.level, levelFor(tt.err))
		})
	}
}
