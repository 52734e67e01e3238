package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/medbook/doctors-portal/internal/http/respond"
)

type contextKey string

const emailKey contextKey = "authEmail"

// RoleChecker reports whether an email identity carries the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Verify extracts and validates the bearer token. A missing or malformed
// Authorization header is 401; a present-but-invalid token is 403. On success
// the asserted email is attached to the request context.
func Verify(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respond.Unauthorized(w)
				return
			}
			claims, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Forbidden(w)
				return
			}
			ctx := context.WithValue(r.Context(), emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the verified email identity, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

// RequireSelf denies the request unless the verified identity matches the
// email named by the given query parameter. Denial short-circuits: the
// wrapped handler never runs.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				respond.Unauthorized(w)
				return
			}
			if requested := r.URL.Query().Get(param); requested != email {
				respond.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin denies the request unless the verified identity holds the
// admin role. The check runs before the wrapped handler, so no mutating
// action can precede it.
func RequireAdmin(roles RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				respond.Unauthorized(w)
				return
			}
			admin, err := roles.IsAdmin(r.Context(), email)
			if err != nil {
				respond.Internal(w, nil, "auth.require_admin", err)
				return
			}
			if !admin {
				respond.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
