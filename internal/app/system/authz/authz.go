// Package authz is the role guard. It must be composed after
// auth.RequireToken: a request with no identity in context fails as
// unauthenticated, and an identity whose role is outside the allowed
// set fails as forbidden. Stateless; no store access.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"github.com/dalemusser/accounthub/internal/app/system/auth"
	"github.com/dalemusser/accounthub/internal/app/system/httpjson"
	"github.com/dalemusser/accounthub/internal/domain/models"
)

// RequireRole allows only identities whose role is in the allowed set.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.CurrentIdentity(r)
			if !ok {
				// Guard ordering violation or unguarded mount: the
				// auth guard has not run. Fail closed as 401.
				httpjson.WriteError(w, nil, apperr.ErrUnauthenticated)
				return
			}
			if _, has := set[strings.ToLower(id.Role)]; !has {
				httpjson.WriteError(w, nil, apperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the current request's identity has the admin
// role. Handlers for admin-only operations re-check this even though
// RequireRole already ran, so the invariant holds if the operation is
// ever mounted behind a different guard chain.
func IsAdmin(r *http.Request) bool {
	id, ok := auth.CurrentIdentity(r)
	return ok && strings.ToLower(id.Role) == models.RoleAdmin
}
