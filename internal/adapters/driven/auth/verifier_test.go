package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
)

func TestNewVerifier(t *testing.T) {
	v := NewVerifier("test-secret")
	if v == nil {
		t.Fatal("expected non-nil verifier")
	}
	if string(v.secret) != "test-secret" {
		t.Error("expected secret to be set")
	}
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewVerifier("secret")

	token, err := v.Mint(&driven.Identity{UserID: "user-1", Email: "student@tracker.test"}, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	identity, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Errorf("expected user ID user-1, got %s", identity.UserID)
	}
	if identity.Email != "student@tracker.test" {
		t.Errorf("expected email student@tracker.test, got %s", identity.Email)
	}
}

func TestVerify_EmptyCredential(t *testing.T) {
	v := NewVerifier("secret")

	_, err := v.Verify(context.Background(), "")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	v := NewVerifier("secret")

	_, err := v.Verify(context.Background(), "not.a.jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewVerifier("secret-a")
	verifier := NewVerifier("secret-b")

	token, _ := issuer.Mint(&driven.Identity{UserID: "user-1"}, time.Hour)

	_, err := verifier.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign-signed token, got %v", err)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := NewVerifier("secret")

	token, _ := v.Mint(&driven.Identity{UserID: "user-1"}, -time.Minute)

	_, err := v.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewVerifier("secret")

	token, _ := v.Mint(&driven.Identity{Email: "student@tracker.test"}, time.Hour)

	_, err := v.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for token without subject, got %v", err)
	}
}
