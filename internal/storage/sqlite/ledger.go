package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/shoppinglist/internal/models"
)

// AppendLedgerEntry inserts a new entry. Entries are never updated or
// deleted; triggers in the schema reject both.
func (s *SQLiteStore) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	return insertLedgerEntry(ctx, s.db, entry)
}

func insertLedgerEntry(ctx context.Context, q querier, entry *models.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now()
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, user_id, amount, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Amount, entry.Detail, toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// ListLedgerEntries returns a user's entries newest first.
func (s *SQLiteStore) ListLedgerEntries(ctx context.Context, userID string) ([]*models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, detail, created_at
		 FROM ledger_entries WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry := &models.LedgerEntry{}
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}
	return entries, nil
}
