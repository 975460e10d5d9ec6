package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/calculator"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
)

// Profile is everything shown on a user's profile page.
type Profile struct {
	User    *models.UserProfile
	Lists   []*models.ShoppingList
	History []*models.LedgerEntry
	Balance decimal.Decimal
}

// ListRoster returns the profiles p may see: every user of the
// organisation for an admin, the member's own profile otherwise.
func (e *Engine) ListRoster(ctx context.Context, p models.Principal) ([]*models.UserProfile, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}

	if !p.IsAdmin() {
		self, err := e.profile(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(p, policy.ViewProfile, policy.ForProfile(self)); err != nil {
			return nil, err
		}
		return []*models.UserProfile{self}, nil
	}

	users, err := e.store.ListUsersByOrganisation(ctx, p.OrganisationID)
	if err != nil {
		return nil, classify("failed to list users", err)
	}
	visible := users[:0]
	for _, u := range users {
		if policy.Authorize(p, policy.ViewProfile, policy.ForProfile(u)) {
			visible = append(visible, u)
		}
	}
	return visible, nil
}

// GetProfile returns the target user's profile, lists, ledger history and
// balance in one call.
func (e *Engine) GetProfile(ctx context.Context, p models.Principal, userID string) (*Profile, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}
	user, err := e.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(p, policy.ViewProfile, policy.ForProfile(user)); err != nil {
		return nil, err
	}

	lists, err := e.store.ListListsByUser(ctx, user.UserID)
	if err != nil {
		return nil, classify("failed to list lists", err)
	}
	history, err := e.store.ListLedgerEntries(ctx, user.UserID)
	if err != nil {
		return nil, classify("failed to list ledger entries", err)
	}

	return &Profile{
		User:    user,
		Lists:   lists,
		History: history,
		Balance: calculator.Balance(history),
	}, nil
}
