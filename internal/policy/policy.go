// Package policy is the single access control component. Every engine
// operation declares the Action it needs and the Target it touches, and asks
// Authorize or Require before reading or writing.
package policy

import (
	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/models"
)

// Action is an operation that needs authorisation.
type Action uint8

const (
	// ViewProfile covers roster entries, profiles, ledger history and balance.
	ViewProfile Action = iota + 1
	// MutateCatalog covers creating and updating catalog items.
	MutateCatalog
	// ViewItem covers reading a single catalog item by id.
	ViewItem
	// ManageGroups covers listing and creating catalog groups.
	ManageGroups
	// ViewList covers list detail reads.
	ViewList
	// MutateList covers status, price and notes changes.
	MutateList
	// GenerateAggregate covers building the aggregate shopping run.
	GenerateAggregate
	// RegisterPayment covers booking a payment against a user.
	RegisterPayment
	// RegisterUser covers inviting users into an organisation.
	RegisterUser
)

var actionNames = map[Action]string{
	ViewProfile:       "profile:view",
	MutateCatalog:     "catalog:mutate",
	ViewItem:          "item:view",
	ManageGroups:      "groups:manage",
	ViewList:          "list:view",
	MutateList:        "list:mutate",
	GenerateAggregate: "aggregate:generate",
	RegisterPayment:   "payment:register",
	RegisterUser:      "user:register",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Target describes the data an action touches.
//
// OrganisationID is the organisation that owns the data, resolved at request
// time. UserID is the owning user for user-scoped data and empty for
// organisation-scoped data.
type Target struct {
	OrganisationID string
	UserID         string
}

// Org targets organisation-scoped data.
func Org(organisationID string) Target {
	return Target{OrganisationID: organisationID}
}

// User targets data owned by a user of the given organisation.
func User(organisationID, userID string) Target {
	return Target{OrganisationID: organisationID, UserID: userID}
}

// ForProfile targets a user's profile.
func ForProfile(p *models.UserProfile) Target {
	return User(p.OrganisationID, p.UserID)
}

// ForItem targets a catalog item. Personal items resolve their organisation
// through the owner's profile, which the caller passes in.
func ForItem(item *models.CatalogItem, ownerOrganisationID string) Target {
	if item.Scope() == models.ScopePersonal {
		return User(ownerOrganisationID, item.OwnerUserID)
	}
	return Org(item.OrganisationID)
}

// Authorize reports whether p may perform a on t.
func Authorize(p models.Principal, a Action, t Target) bool {
	if !p.Resolved() || t.OrganisationID == "" {
		return false
	}
	sameOrg := p.OrganisationID == t.OrganisationID
	owns := t.UserID != "" && t.UserID == p.UserID

	switch p.Role {
	case models.RoleAdmin:
		switch a {
		case ViewProfile, ViewList, MutateList, RegisterPayment:
			return sameOrg
		case MutateCatalog, ManageGroups, GenerateAggregate, RegisterUser:
			return sameOrg && t.UserID == ""
		case ViewItem:
			return itemVisible(p, t)
		}
	case models.RoleMember:
		switch a {
		case ViewProfile, ViewList:
			return sameOrg && owns
		case MutateCatalog:
			return sameOrg && owns
		case ViewItem:
			return itemVisible(p, t)
		}
	}
	return false
}

// itemVisible applies the item lookup rule, which ignores role: an
// organisation item is visible inside its organisation, a personal item to
// its owner only.
func itemVisible(p models.Principal, t Target) bool {
	if t.UserID == "" {
		return p.OrganisationID == t.OrganisationID
	}
	return t.UserID == p.UserID
}

// Require returns the generic Unauthorized failure when Authorize denies.
func Require(p models.Principal, a Action, t Target) error {
	if !Authorize(p, a, t) {
		return apierr.Unauthorized()
	}
	return nil
}
