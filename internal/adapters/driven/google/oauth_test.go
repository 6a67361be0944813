package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/api/v1/gmail/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  server.URL + "/auth",
			TokenURL: server.URL + "/token",
		},
		RevokeURL:   server.URL + "/revoke",
		UserInfoURL: server.URL + "/userinfo",
		HTTPClient:  server.Client(),
	})
	return client, server
}

func TestAuthCodeURL(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	raw := client.AuthCodeURL("state-123", "challenge-abc")

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse auth URL: %v", err)
	}
	q := parsed.Query()

	expected := map[string]string{
		"state":                  "state-123",
		"code_challenge":         "challenge-abc",
		"code_challenge_method":  "S256",
		"access_type":            "offline",
		"prompt":                 "consent",
		"include_granted_scopes": "true",
		"response_type":          "code",
		"client_id":              "client-id",
	}
	for key, want := range expected {
		if got := q.Get(key); got != want {
			t.Errorf("expected %s=%s, got %s", key, want, got)
		}
	}

	if !strings.Contains(q.Get("scope"), "gmail.readonly") {
		t.Errorf("expected gmail.readonly scope, got %s", q.Get("scope"))
	}
}

func TestExchange(t *testing.T) {
	var gotVerifier, gotCode string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotCode = r.FormValue("code")
		gotVerifier = r.FormValue("code_verifier")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"scope":         "https://www.googleapis.com/auth/gmail.readonly",
		})
	}))

	token, err := client.Exchange(context.Background(), "auth-code", "verifier-xyz")
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}

	if gotCode != "auth-code" {
		t.Errorf("expected code auth-code, got %s", gotCode)
	}
	if gotVerifier != "verifier-xyz" {
		t.Errorf("expected code_verifier verifier-xyz, got %s", gotVerifier)
	}
	if token.AccessToken != "at-1" {
		t.Errorf("expected access token at-1, got %s", token.AccessToken)
	}
	if token.RefreshToken != "rt-1" {
		t.Errorf("expected refresh token rt-1, got %s", token.RefreshToken)
	}
	if token.Scope != "https://www.googleapis.com/auth/gmail.readonly" {
		t.Errorf("unexpected scope: %s", token.Scope)
	}
	if token.Expiry.IsZero() {
		t.Error("expected non-zero expiry")
	}
}

func TestExchange_ErrorResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))

	_, err := client.Exchange(context.Background(), "bad-code", "verifier")
	if err == nil {
		t.Fatal("expected error for invalid grant")
	}
}

func TestRefresh(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.FormValue("grant_type") != "refresh_token" {
			t.Errorf("expected grant_type refresh_token, got %s", r.FormValue("grant_type"))
		}
		if r.FormValue("refresh_token") != "rt-1" {
			t.Errorf("expected refresh_token rt-1, got %s", r.FormValue("refresh_token"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-new",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))

	token, err := client.Refresh(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if token.AccessToken != "at-new" {
		t.Errorf("expected access token at-new, got %s", token.AccessToken)
	}
}

func TestUserInfo(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("expected bearer header, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"sub":   "g-123",
			"email": "student@gmail.com",
			"name":  "Test Student",
		})
	}))

	info, err := client.UserInfo(context.Background(), "at-1")
	if err != nil {
		t.Fatalf("userinfo failed: %v", err)
	}
	if info.Subject != "g-123" {
		t.Errorf("expected subject g-123, got %s", info.Subject)
	}
	if info.Email != "student@gmail.com" {
		t.Errorf("expected email student@gmail.com, got %s", info.Email)
	}
}

func TestUserInfo_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.UserInfo(context.Background(), "stale-token")
	if err == nil {
		t.Fatal("expected error for unauthorized userinfo call")
	}
}

func TestRevoke(t *testing.T) {
	var gotToken string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotToken = r.FormValue("token")
	}))

	if err := client.Revoke(context.Background(), "rt-1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if gotToken != "rt-1" {
		t.Errorf("expected token rt-1, got %s", gotToken)
	}
}

func TestRevoke_Failure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	err := client.Revoke(context.Background(), "already-revoked")
	if err == nil {
		t.Fatal("expected error for failed revocation")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientConfig{ClientID: "id", ClientSecret: "secret"})

	if client.revokeURL != defaultRevokeURL {
		t.Errorf("expected default revoke URL, got %s", client.revokeURL)
	}
	if client.userInfoURL != defaultUserInfoURL {
		t.Errorf("expected default userinfo URL, got %s", client.userInfoURL)
	}
	if len(client.conf.Scopes) == 0 {
		t.Error("expected default scopes")
	}
}
