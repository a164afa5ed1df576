package repository

import (
	"context"

	"github.com/northstack/leadgen/internal/domain"
)

// PgAdminSessionRepository implements AdminSessionRepository using pgx.
type PgAdminSessionRepository struct{}

// NewPgAdminSessionRepository creates a new PgAdminSessionRepository.
func NewPgAdminSessionRepository() *PgAdminSessionRepository {
	return &PgAdminSessionRepository{}
}

// Insert writes one audit row per issued token. Rows are never updated;
// expiry is advisory and token verification does not consult this table.
func (r *PgAdminSessionRepository) Insert(ctx context.Context, db DBTX, s *domain.AdminSession) error {
	_, err := db.Exec(ctx, `
		INSERT INTO admin_sessions (id, user_id, session_token, expires_at, ip_address, user_agent, device_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.SessionToken, s.ExpiresAt, s.IPAddress, s.UserAgent, s.DeviceLabel)
	return err
}
