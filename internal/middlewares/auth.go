package middlewares

import (
	"context"
	"net/http"

	"github.com/WingTeck/golub-banka/internal/jwt"
	"github.com/WingTeck/golub-banka/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// accountIDKey is an unexported type for the account id context key
type accountIDKey struct{}

// AuthMiddleware returns a middleware that validates the JWT and stores the
// authenticated account id in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = WithAccountID(ctx, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithAccountID returns a context carrying the authenticated account id.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// AccountIDFromContext returns the authenticated account id stored by
// AuthMiddleware. Returns an empty string if not present.
func AccountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey{}).(string)
	return id
}
