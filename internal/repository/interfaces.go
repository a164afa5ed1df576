package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northstack/leadgen/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AdminUserRepository provides access to admin_users.
type AdminUserRepository interface {
	// FindByUsername returns an admin user by exact, case-sensitive username,
	// or nil if not found.
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.AdminUser, error)

	// TouchLastLogin updates the user's last_login_at to now.
	TouchLastLogin(ctx context.Context, db DBTX, id uuid.UUID) error

	// Create inserts a new admin user (seed tooling only).
	Create(ctx context.Context, db DBTX, user *domain.AdminUser) error
}

// AdminSessionRepository provides access to admin_sessions.
type AdminSessionRepository interface {
	// Insert writes the audit row for an issued token.
	Insert(ctx context.Context, db DBTX, session *domain.AdminSession) error
}

// SubmissionRepository provides the shared list/count/stats/update surface
// over the three submission tables.
type SubmissionRepository interface {
	// List runs the filtered, paginated row query described by cfg.
	List(ctx context.Context, db DBTX, cfg ListingConfig, filters map[string]string, limit, offset int) ([]any, error)

	// Count runs the matching COUNT(*) query with the same filters.
	Count(ctx context.Context, db DBTX, cfg ListingConfig, filters map[string]string) (int64, error)

	// Stats runs the fixed aggregate query against the entity's stats view.
	Stats(ctx context.Context, db DBTX, cfg ListingConfig) (map[string]any, error)

	// UpdateStatus performs the single-row conditional update and returns
	// the updated row, or nil if the id does not exist.
	UpdateStatus(ctx context.Context, db DBTX, cfg ListingConfig, id int64, status string) (any, error)

	// CreateContact, CreateLead and CreateQuote insert public submissions,
	// filling in the generated id, status and timestamps.
	CreateContact(ctx context.Context, db DBTX, c *domain.Contact) error
	CreateLead(ctx context.Context, db DBTX, l *domain.Lead) error
	CreateQuote(ctx context.Context, db DBTX, q *domain.QuoteRequest) error
}
