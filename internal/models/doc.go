// Package models defines the core domain models for the shopping list service.
//
// # Tenancy
//
// An Organisation is the tenant boundary. Every user belongs to exactly one
// organisation through their UserProfile, and every visibility rule in the
// policy package is evaluated against organisation ids.
//
// # Ownership
//
//   - Organisation owns users, catalog groups and organisation catalog items.
//   - A user owns personal catalog items, shopping lists and ledger entries.
//   - A shopping list owns its item names.
//
// Relationships are expressed with ID strings rather than pointers so that
// models can be loaded independently of each other.
//
// # Money
//
// Prices and ledger amounts are decimal.Decimal values. A user's balance is
// always derived by summing their ledger entries and is never persisted.
package models
