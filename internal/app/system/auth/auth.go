// Package auth is the request-level authentication guard: it extracts
// a bearer token from the Authorization header, verifies it, and
// attaches the resolved identity to the request context. It touches no
// storage; token verification is the only check.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"github.com/dalemusser/accounthub/internal/app/system/httpjson"
	"github.com/dalemusser/accounthub/internal/app/system/token"
)

// Identity is what the guard resolves from a verified token and
// injects into the request context.
type Identity struct {
	ID   string // user record id (ObjectID hex)
	Role string // user | admin
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified identity and a found flag.
// ok is false on routes that did not pass through RequireToken.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// RequireToken verifies the bearer token on every request and injects
// the identity for downstream handlers. Missing header, malformed
// header, or failed verification all yield 401.
func RequireToken(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpjson.WriteError(w, nil, apperr.ErrUnauthenticated)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				httpjson.WriteError(w, nil, apperr.ErrUnauthenticated)
				return
			}

			identity := &Identity{ID: claims.Subject, Role: claims.Role}
			next.ServeHTTP(w, withIdentity(r, identity))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func withIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// WithTestIdentity injects an identity directly, bypassing token
// verification. For handler tests only.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return withIdentity(r, id)
}
