package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"github.com/northstack/leadgen/internal/auth"
	"github.com/northstack/leadgen/internal/domain"
	"github.com/northstack/leadgen/internal/repository"
)

// invalidCredentials is returned for an unknown username and for a wrong
// password alike, so responses never reveal whether the username exists.
const invalidCredentials = "Invalid username or password"

// LoginThrottle guards the login endpoint against brute force.
// Satisfied by guard.LoginGuard.
type LoginThrottle interface {
	CheckLocked(ctx context.Context, username string) error
	RecordAttempt(ctx context.Context, username, ip string, success bool)
}

// AdminAuthService handles admin login and token issuance.
type AdminAuthService struct {
	pool     *pgxpool.Pool
	users    repository.AdminUserRepository
	sessions repository.AdminSessionRepository
	jwtMgr   *auth.JWTManager
	throttle LoginThrottle
}

// NewAdminAuthService creates a new AdminAuthService.
func NewAdminAuthService(
	pool *pgxpool.Pool,
	users repository.AdminUserRepository,
	sessions repository.AdminSessionRepository,
	jwtMgr *auth.JWTManager,
	throttle LoginThrottle,
) *AdminAuthService {
	return &AdminAuthService{pool: pool, users: users, sessions: sessions, jwtMgr: jwtMgr, throttle: throttle}
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RequestMeta carries requester details captured in the session audit row.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// LoginResult is returned on successful login. User never serializes the
// password hash.
type LoginResult struct {
	Token string            `json:"token"`
	User  *domain.AdminUser `json:"user"`
}

// Login authenticates an admin, issues a token, persists the session audit
// row, and touches the user's last-login timestamp.
func (s *AdminAuthService) Login(ctx context.Context, input LoginInput, meta RequestMeta) (*LoginResult, error) {
	var missing []string
	if input.Username == "" {
		missing = append(missing, "username is required")
	}
	if input.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		return nil, domain.ErrValidationList(missing)
	}

	if err := s.throttle.CheckLocked(ctx, input.Username); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find admin user", err)
	}
	if user == nil {
		s.throttle.RecordAttempt(ctx, input.Username, meta.IP, false)
		return nil, domain.ErrUnauthorized(invalidCredentials)
	}

	if !user.IsActive {
		return nil, domain.ErrForbidden("Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.throttle.RecordAttempt(ctx, input.Username, meta.IP, false)
		return nil, domain.ErrUnauthorized(invalidCredentials)
	}

	token, expiresAt, err := s.jwtMgr.GenerateToken(user)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	session := &domain.AdminSession{
		ID:           uuid.New(),
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    expiresAt,
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
		DeviceLabel:  deviceLabel(meta.UserAgent),
	}
	if err := s.sessions.Insert(ctx, s.pool, session); err != nil {
		return nil, domain.ErrInternal("insert session", err)
	}

	if err := s.users.TouchLastLogin(ctx, s.pool, user.ID); err != nil {
		return nil, domain.ErrInternal("touch last login", err)
	}

	s.throttle.RecordAttempt(ctx, input.Username, meta.IP, true)

	return &LoginResult{Token: token, User: user}, nil
}

// deviceLabel derives a human-readable device description from the raw
// user agent, stored alongside it in the session row.
func deviceLabel(rawUA string) string {
	if rawUA == "" {
		return "unknown"
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	label := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		label = strings.TrimSpace(label + " on " + os)
	}
	if label == "" {
		return "unknown"
	}
	return label
}
