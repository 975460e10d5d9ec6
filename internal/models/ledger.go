package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one immutable transaction against a user's account.
//
// Sign convention: a positive amount is money the user owes (a charge),
// a negative amount is money received from the user (a payment).
type LedgerEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// UserID is the account the entry is booked against.
	UserID string

	// Amount is the signed value of the entry.
	Amount decimal.Decimal

	// Detail is a human readable description.
	Detail string

	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time
}
