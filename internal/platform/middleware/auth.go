package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/platform/httputil"
	"rosterd/pkg/requestcontext"
)

// TokenValidator defines the interface for verifying bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenDenylist checks whether a token has been explicitly revoked.
// Optional: a nil checker keeps sessions purely stateless.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenClaims represents the identity claims we expect from the validator.
type TokenClaims struct {
	UserID  id.UserID
	Login   string
	JTI     string
	Expired bool
}

// RequireAuth rejects any request without a valid bearer token before it
// reaches a store. On success the verified identity is attached to the
// request context for use as the acting user.
//
// Status mapping: missing token is 401, invalid or expired tokens are 403 to
// force a re-login on the client.
func RequireAuth(validator TokenValidator, denylist TokenDenylist, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "access token required"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "invalid or expired token"))
				return
			}

			if denylist != nil && claims.JTI != "" {
				revoked, err := denylist.IsRevoked(ctx, claims.JTI)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token denylist",
						"error", err,
						"request_id", requestID,
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to validate token"))
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"jti", claims.JTI,
						"request_id", requestID,
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "invalid or expired token"))
					return
				}
			}

			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			ctx = requestcontext.WithLogin(ctx, claims.Login)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
