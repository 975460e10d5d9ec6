package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/pkg/api"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

func toAPIOrganisation(o *models.Organisation) api.Organisation {
	return api.Organisation{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt.Unix()}
}

func toAPIUser(u *models.UserProfile) api.UserProfile {
	return api.UserProfile{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		OrganisationID: u.OrganisationID,
		Role:           u.Role.String(),
		FirstLogin:     u.FirstLogin,
		CreatedAt:      u.CreatedAt.Unix(),
	}
}

func toAPIUsers(users []*models.UserProfile) []api.UserProfile {
	out := make([]api.UserProfile, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}

func toAPIGroup(g *models.CatalogGroup) api.CatalogGroup {
	return api.CatalogGroup{ID: g.ID, Name: g.Name}
}

func toAPIItem(i *models.CatalogItem) api.CatalogItem {
	return api.CatalogItem{
		ID:             i.ID,
		Name:           i.Name,
		Price:          optionalMoney(i.Price),
		OrganisationID: i.OrganisationID,
		GroupName:      i.GroupName,
		OwnerUserID:    i.OwnerUserID,
	}
}

func toAPISections(sections []engine.CatalogSection) []api.GroupedItems {
	out := make([]api.GroupedItems, len(sections))
	for i, s := range sections {
		items := make([]api.CatalogItem, len(s.Items))
		for j, item := range s.Items {
			items[j] = toAPIItem(item)
		}
		out[i] = api.GroupedItems{Group: s.Group, Items: items}
	}
	return out
}

func toAPIList(l *models.ShoppingList) api.ShoppingList {
	return api.ShoppingList{
		ID:          l.ID,
		OwnerUserID: l.OwnerUserID,
		Status:      l.Status,
		Price:       optionalMoney(l.Price),
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt.Unix(),
		Items:       l.Items,
	}
}

func toAPILists(lists []*models.ShoppingList) []api.ShoppingList {
	out := make([]api.ShoppingList, len(lists))
	for i, l := range lists {
		out[i] = toAPIList(l)
	}
	return out
}

func toAPIEntry(e *models.LedgerEntry) api.LedgerEntry {
	return api.LedgerEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		Amount:    money(e.Amount),
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt.Unix(),
	}
}

func toAPIEntries(entries []*models.LedgerEntry) []api.LedgerEntry {
	out := make([]api.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = toAPIEntry(e)
	}
	return out
}

// toAPICounts orders an aggregate by descending count, then name.
func toAPICounts(counts map[string]int) []api.ItemCount {
	out := make([]api.ItemCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, api.ItemCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
