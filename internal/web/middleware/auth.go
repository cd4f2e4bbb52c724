package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/solvetrack/solvetrack/internal/config"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated owner ID from the request context, or ""
// if the request did not pass through BearerAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the owner ID. Exported for handler
// tests that bypass the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// BearerAuth verifies the HS256 bearer token issued by the external auth
// provider and puts its subject claim on the request context as the owner
// ID. All record access downstream is scoped to that ID.
//
// When cfg.Disabled is set the X-User-ID header is trusted instead; that
// mode exists for local development only.
func BearerAuth(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Disabled {
				userID := r.Header.Get("X-User-ID")
				if userID == "" {
					unauthorized(w, r, "missing X-User-ID header", "AUTH_MISSING_USER")
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
				return
			}

			token := bearerToken(r)
			if token == "" {
				unauthorized(w, r, "missing bearer token", "AUTH_MISSING_TOKEN")
				return
			}

			userID, err := verifyToken(token, cfg.JWTSecret)
			if err != nil {
				slog.Warn("auth: token rejected",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				unauthorized(w, r, "invalid bearer token", "AUTH_INVALID_TOKEN")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return auth[len(prefix):]
}

// verifyToken checks the HS256 signature and returns the subject claim.
func verifyToken(token, secret string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token has no subject: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("token subject is empty")
	}
	return sub, nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q,"code":%q}`, msg, code)
}
