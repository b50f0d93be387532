package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/quillpost/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("this username is already taken")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

const userColumns = `id, external_id, name, COALESCE(username, ''), email, profile_picture, bio, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Username, &u.Email, &u.ProfilePicture, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// upsertUser inserts the user keyed by external_id, or refreshes the synced profile fields if it exists.
// An empty username never overwrites a stored one.
func (m *DBModel) upsertUser(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (external_id, name, username, email, profile_picture)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		ON CONFLICT (external_id) DO UPDATE
		SET name = EXCLUDED.name,
			username = COALESCE(EXCLUDED.username, users.username),
			email = EXCLUDED.email,
			profile_picture = EXCLUDED.profile_picture,
			updated_at = NOW()
		RETURNING ` + userColumns

	args := []any{u.ExternalID, u.Name, u.Username, u.Email, u.ProfilePicture}

	user, err := scanUser(m.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_username_key"):
			return nil, ErrDuplicateUsername
		default:
			return nil, err
		}
	}

	return user, nil
}

func (m *DBModel) getUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`

	return scanUser(m.db.QueryRowContext(ctx, query, externalID))
}

func (m *DBModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(m.db.QueryRowContext(ctx, query, id))
}

func (m *DBModel) updateBio(ctx context.Context, externalID, bio string) (*User, error) {
	query := `
		UPDATE users
		SET bio = $1, updated_at = NOW()
		WHERE external_id = $2
		RETURNING ` + userColumns

	return scanUser(m.db.QueryRowContext(ctx, query, bio, externalID))
}
