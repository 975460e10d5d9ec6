package engine

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/calculator"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
)

// ListUpdate carries the fields of an UpdateList call.
type ListUpdate struct {
	ListID string
	// Price is nil when no price is supplied.
	Price *string
	// Status is empty when no transition is proposed.
	Status string
	// Notes always replaces the list's notes.
	Notes string
}

// CreateList creates a list owned by p at the initial status. Items are
// flattened across groups in group order and stored verbatim; repeats are
// kept. Blank names are skipped.
func (e *Engine) CreateList(ctx context.Context, p models.Principal, itemsByGroup map[string][]string) (*models.ShoppingList, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}

	groups := make([]string, 0, len(itemsByGroup))
	for g := range itemsByGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var items []string
	for _, g := range groups {
		for _, name := range itemsByGroup[g] {
			if strings.TrimSpace(name) == "" {
				continue
			}
			items = append(items, name)
		}
	}
	if len(items) == 0 {
		return nil, apierr.Validation("a list needs at least one item")
	}

	list := &models.ShoppingList{
		OwnerUserID: p.UserID,
		Status:      e.statuses.Initial(),
		CreatedAt:   e.now(),
		Items:       items,
	}
	if err := e.store.CreateList(ctx, list); err != nil {
		return nil, classify("failed to create list", err)
	}
	e.recorder.ListCreated()
	return list, nil
}

// GetListsFor returns lists grouped by user, newest first. An admin sees
// every user of the organisation, including users without lists; a member
// sees only their own lists.
func (e *Engine) GetListsFor(ctx context.Context, p models.Principal) ([]*models.UserLists, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}

	var users []*models.UserProfile
	if p.IsAdmin() {
		var err error
		users, err = e.store.ListUsersByOrganisation(ctx, p.OrganisationID)
		if err != nil {
			return nil, classify("failed to list users", err)
		}
	} else {
		self, err := e.profile(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		users = []*models.UserProfile{self}
	}

	result := make([]*models.UserLists, 0, len(users))
	for _, u := range users {
		if !policy.Authorize(p, policy.ViewList, policy.ForProfile(u)) {
			continue
		}
		lists, err := e.store.ListListsByUser(ctx, u.UserID)
		if err != nil {
			return nil, classify("failed to list lists", err)
		}
		if lists == nil {
			lists = []*models.ShoppingList{}
		}
		result = append(result, &models.UserLists{Username: u.Username, UserID: u.UserID, Lists: lists})
	}
	return result, nil
}

// GetListDetail returns a list with its items.
func (e *Engine) GetListDetail(ctx context.Context, p models.Principal, listID string) (*models.ShoppingList, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}
	list, err := e.authorizeList(ctx, p, policy.ViewList, listID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// authorizeList loads a list and checks action against its owner's
// organisation as stored now.
func (e *Engine) authorizeList(ctx context.Context, p models.Principal, action policy.Action, listID string) (*models.ShoppingList, error) {
	if listID == "" {
		return nil, apierr.Validation("list id is required")
	}
	list, err := e.store.GetList(ctx, listID)
	if err != nil {
		return nil, classify("failed to load list", err)
	}
	owner, err := e.store.GetUserByID(ctx, list.OwnerUserID)
	if err != nil {
		return nil, classify("failed to load list owner", err)
	}
	if err := policy.Require(p, action, policy.ForProfile(owner)); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList changes a list's price, status and notes and books any price
// change on the owner's ledger, all in one transaction.
//
// The status only moves to a strictly higher rank; lower or equal proposals
// are ignored while the other fields are still written. A first price books
// the full amount, a changed price books the signed difference, an
// unchanged price books nothing. It returns the updated list and the
// ledger entry, if one was booked.
func (e *Engine) UpdateList(ctx context.Context, p models.Principal, in ListUpdate) (*models.ShoppingList, *models.LedgerEntry, error) {
	if err := requireResolved(p); err != nil {
		return nil, nil, err
	}
	if _, err := e.authorizeList(ctx, p, policy.MutateList, in.ListID); err != nil {
		return nil, nil, err
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, nil, err
	}
	if in.Status != "" {
		if _, ok := e.statuses.Rank(in.Status); !ok {
			return nil, nil, apierr.Validation("unknown list status %q", in.Status)
		}
	}

	var (
		updated *models.ShoppingList
		entry   *models.LedgerEntry
	)
	err = e.store.MutateList(ctx, in.ListID, func(list *models.ShoppingList) ([]*models.LedgerEntry, error) {
		status, err := e.statuses.Advance(list.Status, in.Status)
		if err != nil {
			return nil, err
		}
		if status != list.Status {
			slog.Debug("List status advanced", "list_id", list.ID, "from", list.Status, "to", status)
		}
		list.Status = status

		charge := calculator.PriceChange(list.Price, price)
		if price != nil {
			list.Price = price
		}
		list.Notes = in.Notes
		updated = list

		if charge == nil {
			return nil, nil
		}
		entry = &models.LedgerEntry{
			UserID:    list.OwnerUserID,
			Amount:    charge.Amount,
			Detail:    charge.Detail,
			CreatedAt: e.now(),
		}
		return []*models.LedgerEntry{entry}, nil
	})
	if err != nil {
		if errors.Is(err, calculator.ErrUnknownStatus) {
			return nil, nil, apierr.Validation("%v", err)
		}
		return nil, nil, classify("failed to update list", err)
	}

	if entry != nil {
		e.recorder.LedgerEntry("charge")
	}
	return updated, entry, nil
}
