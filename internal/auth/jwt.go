package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/northstack/leadgen/internal/domain"
)

// Token verification failures are reported as one of these two kinds:
// a request that never presented a token, and a request whose token did
// not verify (bad signature, expired, malformed).
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims holds the admin JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// JWTManager issues and verifies admin tokens. The secret and expiry are
// injected at construction; nothing is read from the environment per call.
type JWTManager struct {
	secret      []byte
	adminExpiry time.Duration
}

// NewJWTManager creates a JWT manager with the given signing secret and
// admin token lifetime.
func NewJWTManager(secret string, adminExpiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), adminExpiry: adminExpiry}
}

// GenerateToken creates a signed HS256 token for the admin user and returns
// it together with its expiry, so callers can persist both in the session row.
func (m *JWTManager) GenerateToken(user *domain.AdminUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.adminExpiry)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token, returning its claims.
// Verification is self-contained: signature and expiry only, no session
// lookup, so a still-unexpired token stays valid even if its session row
// is removed.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
