package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/middleware"
	"github.com/mmynk/shoppinglist/internal/models"
)

var errInternal = errors.New("internal error")

// toConnectError maps an engine failure onto a Connect error. Unauthorized
// and Internal failures are surfaced with generic messages only; Internal
// failures are logged with the operation that hit them.
func toConnectError(op string, err error) error {
	kind := apierr.KindOf(err)
	switch kind {
	case apierr.KindUnauthorized:
		return connect.NewError(connect.CodePermissionDenied, errors.New(apierr.UnauthorizedMessage))
	case apierr.KindUnauthenticated:
		return connect.NewError(connect.CodeUnauthenticated, errors.New(message(err)))
	case apierr.KindNotFound:
		return connect.NewError(connect.CodeNotFound, errors.New(message(err)))
	case apierr.KindConflict:
		return connect.NewError(connect.CodeAlreadyExists, errors.New(message(err)))
	case apierr.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, errors.New(message(err)))
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}

// message returns the caller-facing text of err without wrapped causes.
func message(err error) string {
	var e *apierr.Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return apierr.KindOf(err).String()
}

// principals resolves the caller of an authenticated RPC.
type principals struct {
	resolver *auth.Resolver
}

func (p principals) principal(ctx context.Context) (models.Principal, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return models.Principal{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	principal, err := p.resolver.Resolve(ctx, userID)
	if err != nil {
		return models.Principal{}, toConnectError("resolve principal", err)
	}
	return principal, nil
}
