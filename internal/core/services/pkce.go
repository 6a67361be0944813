package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// verifierEntropy is the number of random bytes behind a PKCE code
// verifier: 32 bytes yields a 43-character base64url string with 256 bits
// of entropy, the RFC 7636 minimum length.
const verifierEntropy = 32

// generateVerifier creates a PKCE code verifier from a cryptographically
// secure random source. A failing random source aborts the whole flow.
func generateVerifier() (string, error) {
	raw := make([]byte, verifierEntropy)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// generateState creates a random state token for CSRF protection.
func generateState() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// codeChallengeS256 derives the S256 code challenge from a verifier:
// base64url-encoded SHA-256, no padding. Deterministic and one-way.
func codeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
