// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/shoppinglist/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned (wrapped) when a unique name is already taken.
	ErrConflict = errors.New("already exists")
)

// Store defines the persistence operations the engine needs.
// This abstraction allows swapping storage backends without changing the
// engine or the service layer.
type Store interface {
	OrganisationStore
	UserStore
	CatalogStore
	ListStore
	LedgerStore

	// Close releases any resources held by the store.
	Close() error
}

// OrganisationStore persists tenants.
type OrganisationStore interface {
	// CreateOrganisation persists a new organisation, its first admin and its
	// starter catalog (group name -> item names) in one transaction.
	// IDs and timestamps are populated by the store.
	CreateOrganisation(ctx context.Context, org *models.Organisation, admin *models.UserProfile, catalog map[string][]string) error

	// GetOrganisation retrieves an organisation by ID.
	GetOrganisation(ctx context.Context, id string) (*models.Organisation, error)
}

// UserStore persists accounts and their profiles.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.UserProfile) error
	GetUserByID(ctx context.Context, id string) (*models.UserProfile, error)
	GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error)

	// ListUsersByOrganisation returns every profile of an organisation ordered by username.
	ListUsersByOrganisation(ctx context.Context, organisationID string) ([]*models.UserProfile, error)

	// MarkLoggedIn clears the first-login flag.
	MarkLoggedIn(ctx context.Context, userID string) error
}

// CatalogStore persists catalog groups and both catalog item variants.
type CatalogStore interface {
	CreateGroup(ctx context.Context, group *models.CatalogGroup) error
	GetGroupByName(ctx context.Context, organisationID, name string) (*models.CatalogGroup, error)
	ListGroups(ctx context.Context, organisationID string) ([]*models.CatalogGroup, error)

	CreateItem(ctx context.Context, item *models.CatalogItem) error
	UpdateItem(ctx context.Context, item *models.CatalogItem) error
	GetItem(ctx context.Context, id string) (*models.CatalogItem, error)

	// ItemNameExists reports whether an item called name exists in the
	// organisation scope (ownerUserID empty) or the personal scope of ownerUserID.
	ItemNameExists(ctx context.Context, organisationID, ownerUserID, name string) (bool, error)

	ListOrganisationItems(ctx context.Context, organisationID string) ([]*models.CatalogItem, error)
	ListPersonalItems(ctx context.Context, ownerUserID string) ([]*models.CatalogItem, error)
}

// ListMutation receives the current state of a list inside a write
// transaction. It edits the list in place and returns the ledger entries to
// append in the same transaction. Returning an error rolls everything back.
type ListMutation func(list *models.ShoppingList) ([]*models.LedgerEntry, error)

// ListStore persists shopping lists and the status reference table.
type ListStore interface {
	// ListStatuses returns the seeded status table.
	ListStatuses(ctx context.Context) ([]models.ListStatus, error)

	// CreateList persists a list and its items.
	CreateList(ctx context.Context, list *models.ShoppingList) error

	// GetList retrieves a list with its items in insertion order.
	GetList(ctx context.Context, id string) (*models.ShoppingList, error)

	// ListListsByUser returns a user's lists newest first, without items.
	ListListsByUser(ctx context.Context, userID string) ([]*models.ShoppingList, error)

	// ListUnshoppedLists returns, with items, every rank 0 list owned by a
	// user of the organisation.
	ListUnshoppedLists(ctx context.Context, organisationID string) ([]*models.ShoppingList, error)

	// MutateList applies fn to the list and persists the list fields and
	// the returned ledger entries atomically.
	MutateList(ctx context.Context, id string, fn ListMutation) error
}

// LedgerStore persists the append-only transaction log.
type LedgerStore interface {
	AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error

	// ListLedgerEntries returns a user's entries newest first.
	ListLedgerEntries(ctx context.Context, userID string) ([]*models.LedgerEntry, error)
}
