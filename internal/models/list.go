package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListStatus is one row of the ordered status reference table.
// Rank 0 is the initial, not yet shopped, state.
type ListStatus struct {
	Label string
	Rank  int
}

// ShoppingList is a user's request for items on the next shopping run.
type ShoppingList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string

	// OwnerUserID is the user who created the list.
	OwnerUserID string

	// Status is a ListStatus label. Transitions are compared by rank only.
	Status string

	// Price is set by an admin once the list has been shopped.
	// Nil means no price has been recorded yet.
	Price *decimal.Decimal

	// Notes are free text written by an admin.
	Notes string

	// CreatedAt is when the list was created.
	CreatedAt time.Time

	// Items are the requested item names in insertion order.
	// Names are free text and need not match the catalog.
	Items []string
}

// UserLists pairs a user with their lists, newest first.
type UserLists struct {
	Username string
	UserID   string
	Lists    []*ShoppingList
}
