package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/shoppinglist/internal/models"
	"github.com/mmynk/shoppinglist/internal/storage"
)

// ListStatuses returns the seeded status table ordered by rank.
func (s *SQLiteStore) ListStatuses(ctx context.Context) ([]models.ListStatus, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT label, status_rank FROM list_statuses ORDER BY status_rank")
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.ListStatus
	for rows.Next() {
		var st models.ListStatus
		if err := rows.Scan(&st.Label, &st.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statuses: %w", err)
	}
	return statuses, nil
}

// CreateList persists a new list and its items.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.ShoppingList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_lists (id, user_id, status, price, notes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			list.ID, list.OwnerUserID, list.Status, nullDecimal(list.Price),
			nullString(list.Notes), toMillis(list.CreatedAt),
		)
		if err != nil {
			return wrapWrite("insert shopping list", err)
		}

		for _, name := range list.Items {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO shopping_list_items (list_id, name) VALUES (?, ?)",
				list.ID, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert shopping list item: %w", err)
			}
		}
		return nil
	})
}

const listColumns = "l.id, l.user_id, l.status, l.price, l.notes, l.created_at"

// GetList retrieves a list by ID, including its items.
func (s *SQLiteStore) GetList(ctx context.Context, id string) (*models.ShoppingList, error) {
	return getList(ctx, s.db, id)
}

func getList(ctx context.Context, q querier, id string) (*models.ShoppingList, error) {
	row := q.QueryRowContext(ctx, "SELECT "+listColumns+" FROM shopping_lists l WHERE l.id = ?", id)
	list, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("shopping list", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		"SELECT name FROM shopping_list_items WHERE list_id = ? ORDER BY id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list item: %w", err)
		}
		list.Items = append(list.Items, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping list items: %w", err)
	}
	return list, nil
}

// ListListsByUser returns a user's lists newest first. Items are not loaded.
func (s *SQLiteStore) ListListsByUser(ctx context.Context, userID string) ([]*models.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+listColumns+" FROM shopping_lists l WHERE l.user_id = ? ORDER BY l.created_at DESC, l.rowid DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.ShoppingList
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping lists: %w", err)
	}
	return lists, nil
}

// ListUnshoppedLists returns every rank 0 list in the organisation with
// its items. Ownership is resolved through the owner's current profile.
func (s *SQLiteStore) ListUnshoppedLists(ctx context.Context, organisationID string) ([]*models.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, i.name
		 FROM shopping_lists l
		 JOIN users u ON u.id = l.user_id
		 JOIN list_statuses st ON st.label = l.status
		 LEFT JOIN shopping_list_items i ON i.list_id = l.id
		 WHERE u.organisation_id = ? AND st.status_rank = 0
		 ORDER BY l.created_at, l.id, i.id`,
		organisationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unshopped lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.ShoppingList
	byID := make(map[string]*models.ShoppingList)
	for rows.Next() {
		var listID string
		var name sql.NullString
		if err := rows.Scan(&listID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan unshopped list item: %w", err)
		}
		list, ok := byID[listID]
		if !ok {
			list = &models.ShoppingList{ID: listID}
			byID[listID] = list
			lists = append(lists, list)
		}
		if name.Valid {
			list.Items = append(list.Items, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unshopped lists: %w", err)
	}
	return lists, nil
}

// MutateList loads the list inside a write transaction, lets fn edit it and
// persists the list fields plus any ledger entries fn returns. Either all of
// it commits or none of it does.
func (s *SQLiteStore) MutateList(ctx context.Context, id string, fn storage.ListMutation) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		list, err := getList(ctx, tx, id)
		if err != nil {
			return err
		}

		entries, err := fn(list)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE shopping_lists SET status = ?, price = ?, notes = ? WHERE id = ?",
			list.Status, nullDecimal(list.Price), nullString(list.Notes), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update shopping list: %w", err)
		}

		for _, entry := range entries {
			if err := insertLedgerEntry(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanList(row scanner) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}
	var price decimal.NullDecimal
	var notes sql.NullString
	var createdAt int64

	if err := row.Scan(&list.ID, &list.OwnerUserID, &list.Status, &price, &notes, &createdAt); err != nil {
		return nil, err
	}

	list.Price = decimalPtr(price)
	list.Notes = notes.String
	list.CreatedAt = fromMillis(createdAt)
	return list, nil
}
