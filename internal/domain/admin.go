package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser represents an admin_users row. Accounts are created by seed
// tooling, never through the API.
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AdminSession is an audit record written on every successful login.
// Rows are insert-only; expiry is advisory and tokens are not revoked
// through this table.
type AdminSession struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	SessionToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	DeviceLabel  string    `json:"device_label"`
	CreatedAt    time.Time `json:"created_at"`
}
