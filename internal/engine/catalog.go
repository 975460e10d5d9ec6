package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/policy"
	"github.com/mmynk/shoppinglist/internal/storage"
)

const (
	// UngroupedSection holds organisation items that belong to no group.
	UngroupedSection = "ungrouped"
	// PersonalSection holds a user's personal items.
	PersonalSection = "custom items"
)

// CatalogSection is one group of a catalog listing.
type CatalogSection struct {
	Group string
	Items []*models.CatalogItem
}

// ItemInput describes a catalog item create or partial update. Nil fields
// are not supplied. ExistingID selects an update.
type ItemInput struct {
	ExistingID string
	Name       *string
	Price      *string
	GroupName  *string
}

// ListCatalog returns an admin every organisation group with its items
// (empty groups included), or a member their personal items.
func (e *Engine) ListCatalog(ctx context.Context, p models.Principal) ([]CatalogSection, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return e.organisationSections(ctx, p.OrganisationID)
	}

	personal, err := e.personalSection(ctx, p)
	if err != nil {
		return nil, err
	}
	return []CatalogSection{personal}, nil
}

// ListGroups returns the organisation's catalog groups. Admins only.
func (e *Engine) ListGroups(ctx context.Context, p models.Principal) ([]*models.CatalogGroup, error) {
	if err := policy.Require(p, policy.ManageGroups, policy.Org(p.OrganisationID)); err != nil {
		return nil, err
	}
	groups, err := e.store.ListGroups(ctx, p.OrganisationID)
	if err != nil {
		return nil, classify("failed to list groups", err)
	}
	return groups, nil
}

// ListCreationOptions returns what p can pick from when building a list:
// the organisation catalog by group followed by p's personal items.
func (e *Engine) ListCreationOptions(ctx context.Context, p models.Principal) ([]CatalogSection, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}
	sections, err := e.organisationSections(ctx, p.OrganisationID)
	if err != nil {
		return nil, err
	}
	personal, err := e.personalSection(ctx, p)
	if err != nil {
		return nil, err
	}
	return append(sections, personal), nil
}

func (e *Engine) organisationSections(ctx context.Context, organisationID string) ([]CatalogSection, error) {
	groups, err := e.store.ListGroups(ctx, organisationID)
	if err != nil {
		return nil, classify("failed to list groups", err)
	}
	items, err := e.store.ListOrganisationItems(ctx, organisationID)
	if err != nil {
		return nil, classify("failed to list catalog items", err)
	}

	byGroup := make(map[string][]*models.CatalogItem, len(groups))
	var ungrouped []*models.CatalogItem
	for _, item := range items {
		if item.GroupID == "" {
			ungrouped = append(ungrouped, item)
			continue
		}
		byGroup[item.GroupID] = append(byGroup[item.GroupID], item)
	}

	sections := make([]CatalogSection, 0, len(groups)+1)
	for _, g := range groups {
		sections = append(sections, CatalogSection{Group: g.Name, Items: nonNil(byGroup[g.ID])})
	}
	if len(ungrouped) > 0 {
		sections = append(sections, CatalogSection{Group: UngroupedSection, Items: ungrouped})
	}
	return sections, nil
}

func (e *Engine) personalSection(ctx context.Context, p models.Principal) (CatalogSection, error) {
	items, err := e.store.ListPersonalItems(ctx, p.UserID)
	if err != nil {
		return CatalogSection{}, classify("failed to list personal items", err)
	}
	return CatalogSection{Group: PersonalSection, Items: nonNil(items)}, nil
}

func nonNil(items []*models.CatalogItem) []*models.CatalogItem {
	if items == nil {
		return []*models.CatalogItem{}
	}
	return items
}

// CreateOrUpdateItem creates a catalog item in p's scope (the organisation
// for an admin, p's personal catalog for a member), or partially updates the
// item named by in.ExistingID. It reports whether an item was created.
func (e *Engine) CreateOrUpdateItem(ctx context.Context, p models.Principal, in ItemInput) (*models.CatalogItem, bool, error) {
	if err := requireResolved(p); err != nil {
		return nil, false, err
	}
	if in.ExistingID != "" {
		item, err := e.updateItem(ctx, p, in)
		return item, false, err
	}
	item, err := e.createItem(ctx, p, in)
	return item, err == nil, err
}

func (e *Engine) createItem(ctx context.Context, p models.Principal, in ItemInput) (*models.CatalogItem, error) {
	item := &models.CatalogItem{}
	target := policy.User(p.OrganisationID, p.UserID)
	if p.IsAdmin() {
		item.OrganisationID = p.OrganisationID
		target = policy.Org(p.OrganisationID)
	} else {
		item.OwnerUserID = p.UserID
	}
	if err := policy.Require(p, policy.MutateCatalog, target); err != nil {
		return nil, err
	}

	if in.Name == nil || normalizeName(*in.Name) == "" {
		return nil, apierr.Validation("item name is required")
	}
	item.Name = normalizeName(*in.Name)

	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	item.Price = price

	if err := e.applyGroup(ctx, item, in.GroupName); err != nil {
		return nil, err
	}

	exists, err := e.store.ItemNameExists(ctx, item.OrganisationID, item.OwnerUserID, item.Name)
	if err != nil {
		return nil, classify("failed to check item name", err)
	}
	if exists {
		return nil, apierr.Conflict("item %q already exists", item.Name)
	}

	if err := e.store.CreateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apierr.Conflict("item %q already exists", item.Name)
		}
		return nil, classify("failed to create item", err)
	}
	return item, nil
}

func (e *Engine) updateItem(ctx context.Context, p models.Principal, in ItemInput) (*models.CatalogItem, error) {
	item, err := e.store.GetItem(ctx, in.ExistingID)
	if err != nil {
		return nil, classify("failed to load item", err)
	}
	ownerOrg, err := e.itemOrganisation(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(p, policy.MutateCatalog, policy.ForItem(item, ownerOrg)); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := normalizeName(*in.Name)
		if name == "" {
			return nil, apierr.Validation("item name must not be blank")
		}
		if name != item.Name {
			exists, err := e.store.ItemNameExists(ctx, item.OrganisationID, item.OwnerUserID, name)
			if err != nil {
				return nil, classify("failed to check item name", err)
			}
			if exists {
				return nil, apierr.Conflict("item %q already exists", name)
			}
			item.Name = name
		}
	}
	if in.Price != nil {
		price, err := parsePrice(in.Price)
		if err != nil {
			return nil, err
		}
		item.Price = price
	}
	if in.GroupName != nil {
		item.GroupID, item.GroupName = "", ""
		if err := e.applyGroup(ctx, item, in.GroupName); err != nil {
			return nil, err
		}
	}

	if err := e.store.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apierr.Conflict("item %q already exists", item.Name)
		}
		return nil, classify("failed to update item", err)
	}
	return item, nil
}

// applyGroup resolves groupName within the item's organisation. Blank means
// no group. Personal items cannot be grouped.
func (e *Engine) applyGroup(ctx context.Context, item *models.CatalogItem, groupName *string) error {
	if groupName == nil || strings.TrimSpace(*groupName) == "" {
		return nil
	}
	if item.Scope() == models.ScopePersonal {
		return apierr.Validation("personal items cannot be placed in a group")
	}
	name := normalizeName(*groupName)
	group, err := e.store.GetGroupByName(ctx, item.OrganisationID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return apierr.NotFound("group %q not found", name)
	}
	if err != nil {
		return classify("failed to load group", err)
	}
	item.GroupID = group.ID
	item.GroupName = group.Name
	return nil
}

// itemOrganisation resolves the organisation that owns item. Personal items
// resolve through their owner's profile at request time.
func (e *Engine) itemOrganisation(ctx context.Context, item *models.CatalogItem) (string, error) {
	if item.Scope() == models.ScopeOrganisation {
		return item.OrganisationID, nil
	}
	owner, err := e.store.GetUserByID(ctx, item.OwnerUserID)
	if err != nil {
		return "", classify("failed to load item owner", err)
	}
	return owner.OrganisationID, nil
}

// CreateGroup adds a catalog group to the admin's organisation.
func (e *Engine) CreateGroup(ctx context.Context, p models.Principal, name string) (*models.CatalogGroup, error) {
	if err := policy.Require(p, policy.ManageGroups, policy.Org(p.OrganisationID)); err != nil {
		return nil, err
	}
	name = normalizeName(name)
	if name == "" {
		return nil, apierr.Validation("group name is required")
	}

	group := &models.CatalogGroup{OrganisationID: p.OrganisationID, Name: name}
	if err := e.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apierr.Conflict("group %q already exists", name)
		}
		return nil, classify("failed to create group", err)
	}
	return group, nil
}

// GetItem returns one catalog item. Admins look items up in the
// organisation catalog and members in their personal catalog; an id of the
// other variant is NotFound.
func (e *Engine) GetItem(ctx context.Context, p models.Principal, itemID string) (*models.CatalogItem, error) {
	if err := requireResolved(p); err != nil {
		return nil, err
	}
	item, err := e.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, classify("failed to load item", err)
	}

	want := models.ScopePersonal
	if p.IsAdmin() {
		want = models.ScopeOrganisation
	}
	if item.Scope() != want {
		return nil, apierr.NotFound("item %s not found", itemID)
	}

	ownerOrg, err := e.itemOrganisation(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(p, policy.ViewItem, policy.ForItem(item, ownerOrg)); err != nil {
		return nil, err
	}
	return item, nil
}
