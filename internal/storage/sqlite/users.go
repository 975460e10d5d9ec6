package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/shoppinglist/internal/models"
)

const userColumns = "id, username, email, password_hash, organisation_id, role, first_login, created_at"

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.UserProfile) error {
	return insertUser(ctx, s.db, user)
}

func insertUser(ctx context.Context, q querier, user *models.UserProfile) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	if !user.Role.Valid() {
		return fmt.Errorf("failed to create user: invalid role %v", user.Role)
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.OrganisationID,
		user.Role.String(),
		user.FirstLogin,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		return wrapWrite("create user", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their login name.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// ListUsersByOrganisation returns every profile of an organisation.
func (s *SQLiteStore) ListUsersByOrganisation(ctx context.Context, organisationID string) ([]*models.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE organisation_id = ? ORDER BY username",
		organisationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.UserProfile
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// MarkLoggedIn clears the first-login flag.
func (s *SQLiteStore) MarkLoggedIn(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET first_login = 0 WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to mark user logged in: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.UserProfile, error) {
	user := &models.UserProfile{}
	var role string
	var createdAt int64

	if err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.OrganisationID,
		&role,
		&user.FirstLogin,
		&createdAt,
	); err != nil {
		return nil, err
	}

	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = r
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
