package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/shoppinglist/internal/models"
)

// CreateOrganisation persists the organisation, its first admin and the
// starter catalog in a single transaction.
func (s *SQLiteStore) CreateOrganisation(ctx context.Context, org *models.Organisation, admin *models.UserProfile, catalog map[string][]string) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = now()
	}
	admin.OrganisationID = org.ID

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO organisations (id, name, created_at) VALUES (?, ?, ?)",
			org.ID, org.Name, toMillis(org.CreatedAt),
		)
		if err != nil {
			return wrapWrite("insert organisation", err)
		}

		if err := insertUser(ctx, tx, admin); err != nil {
			return err
		}

		for groupName, items := range catalog {
			group := &models.CatalogGroup{OrganisationID: org.ID, Name: groupName}
			if err := insertGroup(ctx, tx, group); err != nil {
				return err
			}
			for _, name := range items {
				item := &models.CatalogItem{Name: name, OrganisationID: org.ID, GroupID: group.ID}
				if err := insertItem(ctx, tx, item); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetOrganisation retrieves an organisation by ID.
func (s *SQLiteStore) GetOrganisation(ctx context.Context, id string) (*models.Organisation, error) {
	org := &models.Organisation{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM organisations WHERE id = ?",
		id,
	).Scan(&org.ID, &org.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("organisation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}

	org.CreatedAt = fromMillis(createdAt)
	return org, nil
}
