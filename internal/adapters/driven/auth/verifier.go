package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
)

// Ensure Verifier implements IdentityVerifier
var _ driven.IdentityVerifier = (*Verifier)(nil)

// sessionClaims wraps the session payload for JWT compatibility
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates session JWTs issued by the application frontend
// and resolves them to a user identity.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier with the given signing secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a session token, returning the identity it
// carries. Expired, malformed, or foreign-signed tokens all map to
// domain.ErrUnauthorized.
func (v *Verifier) Verify(ctx context.Context, credential string) (*driven.Identity, error) {
	if credential == "" {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(credential, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &driven.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}

// Mint creates a signed session token for the given identity. Used by the
// local dev server and test fixtures; production tokens come from the
// frontend's session issuer with the same secret.
func (v *Verifier) Mint(identity *driven.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
