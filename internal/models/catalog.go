package models

import "github.com/shopspring/decimal"

// CatalogGroup is an admin-defined grouping of organisation catalog items
// (e.g. "fruit", "dairy"). Names are unique within an organisation.
type CatalogGroup struct {
	ID             string
	OrganisationID string
	Name           string
}

// CatalogScope tells which of the two catalog item variants an item is.
type CatalogScope uint8

const (
	// ScopeOrganisation items are shared with every member of the organisation.
	ScopeOrganisation CatalogScope = iota + 1
	// ScopePersonal items are visible to their owner only.
	ScopePersonal
)

// CatalogItem is a named item that can be picked when building a list.
//
// Exactly one of OrganisationID and OwnerUserID is set.
type CatalogItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is always stored lower-case.
	Name string

	// Price is the optional approximate price.
	Price *decimal.Decimal

	// OrganisationID is set for organisation items.
	OrganisationID string

	// GroupID optionally places an organisation item into a group.
	GroupID string

	// GroupName is filled in on reads when GroupID is set.
	GroupName string

	// OwnerUserID is set for personal items.
	OwnerUserID string
}

// Scope reports which variant the item is.
func (i *CatalogItem) Scope() CatalogScope {
	if i.OwnerUserID != "" {
		return ScopePersonal
	}
	return ScopeOrganisation
}
