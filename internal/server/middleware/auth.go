package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/domain"
)

// Auth resolves the bearer token to a user record and attaches it to the
// request context. Validating the token and loading the user row are the two
// remote calls every authenticated request pays. Deactivated and soft-deleted
// users are rejected the same way as invalid tokens.
func Auth(jwtSecret string, users domain.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w, "token is missing")
				return
			}

			ctx, ok := authenticate(r.Context(), tok, jwtSecret, users)
			if !ok {
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

func authenticate(ctx context.Context, tokenStr, secret string, users domain.UserRepository) (context.Context, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return ctx, false
	}

	if claims.TokenType != "access" {
		return ctx, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx, false
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return ctx, false
	}

	if user.IsDeleted || !user.IsActive {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyUser, user)
	ctx = context.WithValue(ctx, ContextKeyRoleName, claims.RoleName)
	return ctx, true
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"title":"Unauthorized","status":401,"detail":"` + detail + `"}`))
}
