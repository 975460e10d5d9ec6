// Package engine implements the shopping list operations: catalog, list
// lifecycle, aggregation, ledger and roster. Every operation takes a
// resolved Principal, asks the policy package before touching data, and
// returns apierr failures.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/calculator"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/storage"
)

// Recorder receives business events for metrics.
type Recorder interface {
	LedgerEntry(kind string)
	ListCreated()
	AggregateGenerated()
}

type nopRecorder struct{}

func (nopRecorder) LedgerEntry(string)  {}
func (nopRecorder) ListCreated()        {}
func (nopRecorder) AggregateGenerated() {}

// Engine runs the operations against a Store.
type Engine struct {
	store    storage.Store
	statuses *calculator.StatusTable
	authn    auth.Authenticator
	recorder Recorder
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAuthenticator sets the authenticator used by onboarding and login.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(e *Engine) { e.authn = a }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New loads the status table from store and returns a ready Engine.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Engine, error) {
	statuses, err := store.ListStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load list statuses: %w", err)
	}
	table, err := calculator.NewStatusTable(statuses)
	if err != nil {
		return nil, fmt.Errorf("invalid list status table: %w", err)
	}

	e := &Engine{
		store:    store,
		statuses: table,
		authn:    auth.NewPasswordAuthenticator(store),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Statuses returns the configured list statuses in rank order.
func (e *Engine) Statuses() []models.ListStatus {
	return e.statuses.Statuses()
}

func requireResolved(p models.Principal) error {
	if !p.Resolved() {
		return apierr.Unauthorized()
	}
	return nil
}

// classify turns a storage error into an apierr failure.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &apierr.Error{Kind: apierr.KindNotFound, Msg: op, Err: err}
	case errors.Is(err, storage.ErrConflict):
		return &apierr.Error{Kind: apierr.KindConflict, Msg: op, Err: err}
	default:
		return apierr.Internal(op, err)
	}
}

// profile loads a user's profile; a missing user is NotFound.
func (e *Engine) profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, apierr.Validation("user id is required")
	}
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, classify("failed to load user", err)
	}
	return user, nil
}

// normalizeName trims and lower-cases a catalog name.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parsePrice parses an optional price. Nil or blank input means no price.
func parsePrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apierr.Validation("price %q is not a decimal", *raw)
	}
	if price.IsNegative() {
		return nil, apierr.Validation("price must not be negative")
	}
	return &price, nil
}
