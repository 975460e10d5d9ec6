package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/models"
)

// CreateGroup persists a new catalog group.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.CatalogGroup) error {
	return insertGroup(ctx, s.db, group)
}

func insertGroup(ctx context.Context, q querier, group *models.CatalogGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	_, err := q.ExecContext(ctx,
		"INSERT INTO catalog_groups (id, organisation_id, name) VALUES (?, ?, ?)",
		group.ID, group.OrganisationID, group.Name,
	)
	if err != nil {
		return wrapWrite("insert catalog group", err)
	}
	return nil
}

// GetGroupByName resolves a group by name within an organisation.
func (s *SQLiteStore) GetGroupByName(ctx context.Context, organisationID, name string) (*models.CatalogGroup, error) {
	group := &models.CatalogGroup{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, organisation_id, name FROM catalog_groups WHERE organisation_id = ? AND name = ?",
		organisationID, name,
	).Scan(&group.ID, &group.OrganisationID, &group.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("catalog group", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog group: %w", err)
	}
	return group, nil
}

// ListGroups returns an organisation's groups ordered by name.
func (s *SQLiteStore) ListGroups(ctx context.Context, organisationID string) ([]*models.CatalogGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, organisation_id, name FROM catalog_groups WHERE organisation_id = ? ORDER BY name",
		organisationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.CatalogGroup
	for rows.Next() {
		group := &models.CatalogGroup{}
		if err := rows.Scan(&group.ID, &group.OrganisationID, &group.Name); err != nil {
			return nil, fmt.Errorf("failed to scan catalog group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog groups: %w", err)
	}
	return groups, nil
}

// CreateItem persists a new catalog item of either variant.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	return insertItem(ctx, s.db, item)
}

func insertItem(ctx context.Context, q querier, item *models.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO catalog_items (id, name, price, organisation_id, group_id, owner_user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, nullDecimal(item.Price),
		nullString(item.OrganisationID), nullString(item.GroupID), nullString(item.OwnerUserID),
	)
	if err != nil {
		return wrapWrite("insert catalog item", err)
	}
	return nil
}

// UpdateItem overwrites name, price and group of an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.CatalogItem) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE catalog_items SET name = ?, price = ?, group_id = ? WHERE id = ?",
		item.Name, nullDecimal(item.Price), nullString(item.GroupID), item.ID,
	)
	if err != nil {
		return wrapWrite("update catalog item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("catalog item", item.ID)
	}
	return nil
}

const itemSelect = `
SELECT i.id, i.name, i.price, i.organisation_id, i.group_id, i.owner_user_id, g.name
FROM catalog_items i
LEFT JOIN catalog_groups g ON g.id = i.group_id`

// GetItem retrieves an item by ID together with its group name.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	row := s.db.QueryRowContext(ctx, itemSelect+" WHERE i.id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("catalog item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}
	return item, nil
}

// ItemNameExists reports whether the name is taken in the given scope.
func (s *SQLiteStore) ItemNameExists(ctx context.Context, organisationID, ownerUserID, name string) (bool, error) {
	var query string
	var scope string
	if ownerUserID != "" {
		query = "SELECT 1 FROM catalog_items WHERE owner_user_id = ? AND name = ?"
		scope = ownerUserID
	} else {
		query = "SELECT 1 FROM catalog_items WHERE organisation_id = ? AND name = ?"
		scope = organisationID
	}

	var exists int
	err := s.db.QueryRowContext(ctx, query, scope, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check catalog item name: %w", err)
	}
	return true, nil
}

// ListOrganisationItems returns every organisation item ordered by name.
func (s *SQLiteStore) ListOrganisationItems(ctx context.Context, organisationID string) ([]*models.CatalogItem, error) {
	return s.listItems(ctx, itemSelect+" WHERE i.organisation_id = ? ORDER BY i.name", organisationID)
}

// ListPersonalItems returns a user's personal items ordered by name.
func (s *SQLiteStore) ListPersonalItems(ctx context.Context, ownerUserID string) ([]*models.CatalogItem, error) {
	return s.listItems(ctx, itemSelect+" WHERE i.owner_user_id = ? ORDER BY i.name", ownerUserID)
}

func (s *SQLiteStore) listItems(ctx context.Context, query string, arg string) ([]*models.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog items: %w", err)
	}
	return items, nil
}

func scanItem(row scanner) (*models.CatalogItem, error) {
	item := &models.CatalogItem{}
	var price decimal.NullDecimal
	var orgID, groupID, ownerID, groupName sql.NullString

	if err := row.Scan(&item.ID, &item.Name, &price, &orgID, &groupID, &ownerID, &groupName); err != nil {
		return nil, err
	}

	item.Price = decimalPtr(price)
	item.OrganisationID = orgID.String
	item.GroupID = groupID.String
	item.OwnerUserID = ownerID.String
	item.GroupName = groupName.String
	return item, nil
}

// nullDecimal maps a nil price to NULL.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
