package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/status"
	"github.com/jrsteele09/go-auth-dispatch/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authorised user record
	ContextKeyUser ContextKey = "user"
)

// UserFromContext returns the user stored by Authorize.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(*users.User)
	return u, ok && u != nil
}

// Authorize validates the session token, loads the user's current record and
// reports its status in the x-documize-status header. The header is written
// before the active check so deactivated users learn why they were refused.
func (s *Server) Authorize(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header")
			return
		}

		claims, err := s.issuer.Verify(raw)
		if err != nil {
			description := "Invalid token"
			if errors.Is(err, errors.ErrTokenExpired) {
				description = "Token expired"
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", description)
			return
		}

		user, err := s.users.GetByID(claims.Subject)
		if err != nil {
			log.Err(err).Str("user_id", claims.Subject).Msg("Authorize: unknown user")
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unknown user")
			return
		}

		status.Set(w.Header(), user.Status())

		if !user.Active {
			writeError(w, http.StatusUnauthorized, "unauthorized", errors.ErrUserInactive.Error())
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin must be chained after Authorize.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.Admin {
			writeError(w, http.StatusForbidden, "forbidden", errors.ErrForbidden.Error())
			return
		}
		next(w, r)
	}
}

// bearerToken accepts the raw token or the "Bearer <token>" form.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
