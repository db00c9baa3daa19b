package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/botplane/botplane/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUserDeactivated    = errors.New("auth: user is deactivated")
	ErrUserDeleted        = errors.New("auth: user is deleted")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service provides signup, login and password-reset operations.
type Service struct {
	users      domain.UserRepository
	roles      domain.RoleRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewService(users domain.UserRepository, roles domain.RoleRepository, jwtSecret string, accessTTL, refreshTTL, resetTTL time.Duration) *Service {
	return &Service{
		users:      users,
		roles:      roles,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

// LoginResult carries the tokens and the authenticated user payload.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
	RoleName     string
}

// SignUp creates a new user with an argon2id-hashed password.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string, age int, soldeTotal int64) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("auth.SignUp: %w", ErrUserAlreadyExists)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.SignUp: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Age:          age,
		SoldeTotal:   soldeTotal,
		IsActive:     true,
		IsDeleted:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the GetByEmail pre-check and hit
		// the unique index instead.
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("auth.SignUp: %w", ErrUserAlreadyExists)
		}
		return nil, fmt.Errorf("auth.SignUp: %w", err)
	}

	return user, nil
}

// Login validates credentials and returns access + refresh tokens along with
// the user payload. Deactivated and deleted accounts are rejected.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("auth.Login: %w", ErrUserDeactivated)
	}
	if user.IsDeleted {
		return nil, fmt.Errorf("auth.Login: %w", ErrUserDeleted)
	}

	var roleName string
	if user.RoleID != nil {
		role, roleErr := s.roles.GetByID(ctx, *user.RoleID)
		if roleErr == nil {
			roleName = role.RoleName
		}
	}

	accessToken, err := IssueAccessToken(s.jwtSecret, user.ID, user.RoleID, roleName, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	refreshToken, err := IssueRefreshToken(s.jwtSecret, user.ID, user.RoleID, roleName, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		RoleName:     roleName,
	}, nil
}

// Refresh validates a refresh token and issues a new access token with the
// user's current role.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.Refresh: %w", ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: invalid user id: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", ErrUserNotFound)
	}

	var roleName string
	if user.RoleID != nil {
		role, roleErr := s.roles.GetByID(ctx, *user.RoleID)
		if roleErr == nil {
			roleName = role.RoleName
		}
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, user.ID, user.RoleID, roleName, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}

	return newAccess, nil
}

// ForgotPassword issues a short-lived reset token for the account. There is
// no mailer; the caller decides how to deliver the token. Returns
// ErrUserNotFound for unknown emails so the handler can stay non-revealing.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("auth.ForgotPassword: %w", ErrUserNotFound)
	}

	token, err := IssueResetToken(s.jwtSecret, user.ID, s.resetTTL)
	if err != nil {
		return "", fmt.Errorf("auth.ForgotPassword: %w", err)
	}

	return token, nil
}

// ResetPassword validates a reset token and stores the new password hash.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := ValidateToken(s.jwtSecret, resetToken)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}

	if claims.TokenType != tokenTypeReset {
		return fmt.Errorf("auth.ResetPassword: %w", ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword: invalid user id: %w", err)
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}

	return nil
}

// HashPassword generates an argon2id hash for a plaintext password.
// Exposed for the user-creation endpoint, which also stores credentials.
func HashPassword(password string) (string, error) {
	return hashPassword(password)
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(computed, expectedHash) == 1
}
