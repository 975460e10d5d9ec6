package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedOrganisation(t *testing.T, store *SQLiteStore, name string) (*models.Organisation, *models.UserProfile) {
	t.Helper()

	org := &models.Organisation{Name: name}
	admin := &models.UserProfile{Username: name + "-admin", PasswordHash: "x", Role: models.RoleAdmin}
	if err := store.CreateOrganisation(context.Background(), org, admin, map[string][]string{
		"dairy": {"milk", "eggs"},
		"fruit": {"bananas"},
	}); err != nil {
		t.Fatalf("CreateOrganisation failed: %v", err)
	}
	return org, admin
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org, admin := seedOrganisation(t, store, "house")

	t.Run("CreateOrganisation seeds admin and catalog", func(t *testing.T) {
		if org.ID == "" || admin.UserID == "" {
			t.Fatal("Expected IDs to be generated")
		}
		if admin.OrganisationID != org.ID {
			t.Errorf("admin organisation = %s, want %s", admin.OrganisationID, org.ID)
		}

		groups, err := store.ListGroups(ctx, org.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}

		items, err := store.ListOrganisationItems(ctx, org.ID)
		if err != nil {
			t.Fatalf("ListOrganisationItems failed: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(items))
		}
		for _, item := range items {
			if item.GroupName == "" {
				t.Errorf("Expected group name on item %q", item.Name)
			}
		}
	})

	t.Run("Duplicate organisation name conflicts", func(t *testing.T) {
		err := store.CreateOrganisation(ctx,
			&models.Organisation{Name: "house"},
			&models.UserProfile{Username: "someone-else", PasswordHash: "x", Role: models.RoleAdmin},
			nil,
		)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}
		if _, err := store.GetUserByUsername(ctx, "someone-else"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected admin insert to be rolled back, got %v", err)
		}
	})

	t.Run("Users round trip", func(t *testing.T) {
		member := &models.UserProfile{
			Username:       "alice",
			Email:          "alice@example.com",
			PasswordHash:   "hash",
			OrganisationID: org.ID,
			Role:           models.RoleMember,
			FirstLogin:     true,
		}
		if err := store.CreateUser(ctx, member); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.Role != models.RoleMember || !got.FirstLogin || got.OrganisationID != org.ID {
			t.Errorf("Unexpected profile: %+v", got)
		}

		if err := store.MarkLoggedIn(ctx, member.UserID); err != nil {
			t.Fatalf("MarkLoggedIn failed: %v", err)
		}
		got, _ = store.GetUserByID(ctx, member.UserID)
		if got.FirstLogin {
			t.Error("Expected FirstLogin to be cleared")
		}

		dup := &models.UserProfile{Username: "alice", PasswordHash: "x", OrganisationID: org.ID, Role: models.RoleMember}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict for duplicate username, got %v", err)
		}

		users, err := store.ListUsersByOrganisation(ctx, org.ID)
		if err != nil {
			t.Fatalf("ListUsersByOrganisation failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("Expected 2 users, got %d", len(users))
		}
	})

	t.Run("GetUserByID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Catalog item names are unique per scope", func(t *testing.T) {
		price := decimal.RequireFromString("1.25")
		item := &models.CatalogItem{Name: "bread", Price: &price, OrganisationID: org.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		exists, err := store.ItemNameExists(ctx, org.ID, "", "bread")
		if err != nil || !exists {
			t.Fatalf("ItemNameExists = %v, %v; want true", exists, err)
		}

		dup := &models.CatalogItem{Name: "bread", OrganisationID: org.ID}
		if err := store.CreateItem(ctx, dup); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}

		personal := &models.CatalogItem{Name: "bread", OwnerUserID: admin.UserID}
		if err := store.CreateItem(ctx, personal); err != nil {
			t.Errorf("Personal item with an org item's name should be allowed: %v", err)
		}

		got, err := store.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.Price == nil || !got.Price.Equal(price) {
			t.Errorf("Price mismatch: got %v, want %s", got.Price, price)
		}

		got.Price = nil
		got.Name = "rye bread"
		if err := store.UpdateItem(ctx, got); err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		got, _ = store.GetItem(ctx, item.ID)
		if got.Price != nil || got.Name != "rye bread" {
			t.Errorf("Unexpected item after update: %+v", got)
		}
	})

	t.Run("Statuses are seeded", func(t *testing.T) {
		statuses, err := store.ListStatuses(ctx)
		if err != nil {
			t.Fatalf("ListStatuses failed: %v", err)
		}
		if len(statuses) != 3 || statuses[0].Label != "CREATED" || statuses[0].Rank != 0 {
			t.Errorf("Unexpected statuses: %+v", statuses)
		}
	})

	t.Run("Lists keep item order and sort newest first", func(t *testing.T) {
		older := &models.ShoppingList{
			OwnerUserID: admin.UserID,
			Status:      "CREATED",
			CreatedAt:   time.Now().Add(-time.Hour),
			Items:       []string{"milk", "eggs", "milk"},
		}
		newer := &models.ShoppingList{OwnerUserID: admin.UserID, Status: "CREATED", Items: []string{"coke"}}
		for _, l := range []*models.ShoppingList{older, newer} {
			if err := store.CreateList(ctx, l); err != nil {
				t.Fatalf("CreateList failed: %v", err)
			}
		}

		got, err := store.GetList(ctx, older.ID)
		if err != nil {
			t.Fatalf("GetList failed: %v", err)
		}
		if len(got.Items) != 3 || got.Items[0] != "milk" || got.Items[1] != "eggs" {
			t.Errorf("Unexpected items: %v", got.Items)
		}
		if got.Price != nil {
			t.Errorf("Expected no price, got %s", got.Price)
		}

		lists, err := store.ListListsByUser(ctx, admin.UserID)
		if err != nil {
			t.Fatalf("ListListsByUser failed: %v", err)
		}
		if len(lists) != 2 || lists[0].ID != newer.ID {
			t.Errorf("Expected newest list first, got %+v", lists)
		}

		open, err := store.ListUnshoppedLists(ctx, org.ID)
		if err != nil {
			t.Fatalf("ListUnshoppedLists failed: %v", err)
		}
		if len(open) != 2 {
			t.Errorf("Expected 2 unshopped lists, got %d", len(open))
		}
	})

	t.Run("MutateList commits list and ledger together", func(t *testing.T) {
		list := &models.ShoppingList{OwnerUserID: admin.UserID, Status: "CREATED", Items: []string{"tea"}}
		if err := store.CreateList(ctx, list); err != nil {
			t.Fatalf("CreateList failed: %v", err)
		}

		price := decimal.RequireFromString("12.50")
		err := store.MutateList(ctx, list.ID, func(l *models.ShoppingList) ([]*models.LedgerEntry, error) {
			l.Price = &price
			l.Status = "SHOPPED"
			l.Notes = "paid cash"
			return []*models.LedgerEntry{{UserID: l.OwnerUserID, Amount: price, Detail: "List price added."}}, nil
		})
		if err != nil {
			t.Fatalf("MutateList failed: %v", err)
		}

		got, _ := store.GetList(ctx, list.ID)
		if got.Status != "SHOPPED" || got.Notes != "paid cash" || got.Price == nil || !got.Price.Equal(price) {
			t.Errorf("Unexpected list after mutation: %+v", got)
		}

		entries, err := store.ListLedgerEntries(ctx, admin.UserID)
		if err != nil {
			t.Fatalf("ListLedgerEntries failed: %v", err)
		}
		if len(entries) != 1 || !entries[0].Amount.Equal(price) {
			t.Errorf("Unexpected ledger entries: %+v", entries)
		}

		open, _ := store.ListUnshoppedLists(ctx, org.ID)
		for _, l := range open {
			if l.ID == list.ID {
				t.Error("Shopped list should not be returned as unshopped")
			}
		}
	})

	t.Run("MutateList rolls back when the ledger insert fails", func(t *testing.T) {
		list := &models.ShoppingList{OwnerUserID: admin.UserID, Status: "CREATED", Items: []string{"jam"}}
		if err := store.CreateList(ctx, list); err != nil {
			t.Fatalf("CreateList failed: %v", err)
		}

		price := decimal.RequireFromString("3")
		err := store.MutateList(ctx, list.ID, func(l *models.ShoppingList) ([]*models.LedgerEntry, error) {
			l.Price = &price
			// Unknown user violates the ledger foreign key.
			return []*models.LedgerEntry{{UserID: "ghost", Amount: price, Detail: "List price added."}}, nil
		})
		if err == nil {
			t.Fatal("Expected MutateList to fail")
		}

		got, _ := store.GetList(ctx, list.ID)
		if got.Price != nil {
			t.Errorf("Expected price to be rolled back, got %s", got.Price)
		}
	})

	t.Run("MutateList on missing list returns ErrNotFound", func(t *testing.T) {
		err := store.MutateList(ctx, "nonexistent-id", func(*models.ShoppingList) ([]*models.LedgerEntry, error) {
			t.Fatal("mutation must not run")
			return nil, nil
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Ledger entries are append-only", func(t *testing.T) {
		if _, err := store.db.ExecContext(ctx, "DELETE FROM ledger_entries"); err == nil {
			t.Error("Expected delete to be rejected")
		}
		if _, err := store.db.ExecContext(ctx, "UPDATE ledger_entries SET amount = '0'"); err == nil {
			t.Error("Expected update to be rejected")
		}
	})
}
