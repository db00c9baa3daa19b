package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims holds the JWT token payload. Field types and JSON tags are compatible
// with the middleware's parsing so tokens issued here are accepted there.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	RoleID    string `json:"rid,omitempty"`
	RoleName  string `json:"role,omitempty"`
	TokenType string `json:"typ"` // "access", "refresh" or "reset"
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenTypeReset   = "reset"
)

// ErrInvalidToken is returned when a JWT cannot be parsed or has expired.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// IssueAccessToken creates a signed JWT access token.
func IssueAccessToken(secret string, userID uuid.UUID, roleID *uuid.UUID, roleName string, ttl time.Duration) (string, error) {
	return issueToken(secret, userID, roleID, roleName, tokenTypeAccess, ttl)
}

// IssueRefreshToken creates a signed JWT refresh token.
func IssueRefreshToken(secret string, userID uuid.UUID, roleID *uuid.UUID, roleName string, ttl time.Duration) (string, error) {
	return issueToken(secret, userID, roleID, roleName, tokenTypeRefresh, ttl)
}

// IssueResetToken creates a short-lived password-reset token.
func IssueResetToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	return issueToken(secret, userID, nil, "", tokenTypeReset, ttl)
}

func issueToken(secret string, userID uuid.UUID, roleID *uuid.UUID, roleName, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "botplane",
		},
		UserID:    userID.String(),
		RoleName:  roleName,
		TokenType: tokenType,
	}
	if roleID != nil {
		claims.RoleID = roleID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth.issueToken: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT token string. Returns the embedded claims.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	return claims, nil
}
