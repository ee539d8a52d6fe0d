// Package token issues and verifies the signed bearer tokens that
// carry a user's identity and role. Tokens are HS256 JWTs with a fixed
// validity window; there is no revocation, so a token stays valid for
// its full window regardless of later account state changes.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the validity window for issued tokens.
const DefaultTTL = 24 * time.Hour

// ErrInvalid is returned by Verify for any unusable token: bad
// signature, malformed payload, wrong algorithm, or past expiry.
var ErrInvalid = errors.New("invalid or expired token")

// Claims is the JWT payload: registered claims plus the account role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Service signs and verifies tokens with a process-wide secret loaded
// once at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New builds a Service. The secret must be non-empty; ttl <= 0 falls
// back to DefaultTTL.
func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source. Tests use this to step across
// the expiry boundary.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue signs a token embedding the user id (subject) and role, valid
// from now until now+TTL. Each token carries a unique jti.
func (s *Service) Issue(userID, role string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
// All failure modes collapse to ErrInvalid so callers cannot
// distinguish (and leak) why a token was rejected.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
