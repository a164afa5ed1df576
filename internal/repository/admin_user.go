package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/northstack/leadgen/internal/domain"
)

// PgAdminUserRepository implements AdminUserRepository using pgx.
type PgAdminUserRepository struct{}

// NewPgAdminUserRepository creates a new PgAdminUserRepository.
func NewPgAdminUserRepository() *PgAdminUserRepository {
	return &PgAdminUserRepository{}
}

// FindByUsername returns an admin user by username, or nil if not found.
// The match is exact and case-sensitive.
func (r *PgAdminUserRepository) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.AdminUser, error) {
	row := db.QueryRow(ctx, `
		SELECT id, username, password_hash, email, full_name, role, is_active,
		       last_login_at, created_at, updated_at
		FROM admin_users WHERE username = $1`, username)

	u := &domain.AdminUser{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName,
		&u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// TouchLastLogin records a successful login on the user row.
func (r *PgAdminUserRepository) TouchLastLogin(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx,
		`UPDATE admin_users SET last_login_at = now(), updated_at = now() WHERE id = $1`, id)
	return err
}

// Create inserts a new admin user. Used by seed tooling, not the API.
func (r *PgAdminUserRepository) Create(ctx context.Context, db DBTX, user *domain.AdminUser) error {
	_, err := db.Exec(ctx, `
		INSERT INTO admin_users (id, username, password_hash, email, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.PasswordHash, user.Email, user.FullName, user.Role, user.IsActive)
	return err
}
