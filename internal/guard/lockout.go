package guard

import (
	"context"
	"time"

	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/repository"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// LoginGuard tracks failed admin logins in the login_attempts table and
// locks an account out after repeated failures inside the window.
type LoginGuard struct {
	db repository.DBTX
}

// NewLoginGuard creates a LoginGuard backed by the given database.
func NewLoginGuard(db repository.DBTX) *LoginGuard {
	return &LoginGuard{db: db}
}

// RecordAttempt inserts a login attempt row. Failures to record are
// swallowed; auditing must not break the login path.
func (g *LoginGuard) RecordAttempt(ctx context.Context, username, ip string, success bool) {
	_, _ = g.db.Exec(ctx, `
		INSERT INTO login_attempts (username, ip_address, success)
		VALUES ($1, $2, $3)`,
		username, ip, success)
}

// CheckLocked returns ErrAccountLocked if the username has >= MaxAttempts
// failed logins within the lockout window.
func (g *LoginGuard) CheckLocked(ctx context.Context, username string) error {
	var count int
	err := g.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE username = $1 AND success = false
		  AND created_at > $2`,
		username, time.Now().Add(-LockoutWindow)).Scan(&count)
	if err != nil {
		return nil // fail open on DB error, don't block login
	}
	if count >= MaxAttempts {
		return domain.ErrAccountLocked("too many failed login attempts, try again later")
	}
	return nil
}
