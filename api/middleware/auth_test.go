package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/Viniciusgrn/forFunOrganizado/pkg/auth"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
)

type stubSessionChecker struct {
	live map[string]bool
	err  error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[accessID], nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "middleware-secret", Issuer: "catalog-test", ExpirationMinutes: 5}
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   3,
		Username: "admin",
		JTI:      jti,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func TestAuthSeedsIdentityForLiveSession(t *testing.T) {
	checker := &stubSessionChecker{live: map[string]bool{"jti-1": true}}

	var gotUserID uint
	var gotAccessID string
	handler := Auth(authTestConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotAccessID = AccessIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("PUT", "/api/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != 3 || gotAccessID != "jti-1" {
		t.Fatalf("identity not seeded: user=%d access=%q", gotUserID, gotAccessID)
	}
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	handler := Auth(authTestConfig(), &stubSessionChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("DELETE", "/api/products/1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &stubSessionChecker{live: map[string]bool{}}
	handler := Auth(authTestConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-revoked"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(authTestConfig(), &stubSessionChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
