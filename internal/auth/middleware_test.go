package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testIssuer(t *testing.T, ttl time.Duration) *Issuer {
	t.Helper()
	issuer, err := NewIssuer("test-secret", ttl)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func signedToken(t *testing.T, issuer *Issuer, email string) string {
	t.Helper()
	token, err := issuer.Issue(email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestVerifyMissingHeader(t *testing.T) {
	mw := Verify(testIssuer(t, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestVerifyMalformedHeader(t *testing.T) {
	mw := Verify(testIssuer(t, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	other, _ := NewIssuer("other-secret", time.Hour)
	mw := Verify(testIssuer(t, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, other, "a@x.com"))
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	expired := testIssuer(t, -time.Minute)
	mw := Verify(issuer)
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, expired, "a@x.com"))
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestVerifyValidTokenAttachesEmail(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	mw := Verify(issuer)
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "a@x.com"))
	rec := httptest.NewRecorder()

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		email, ok := EmailFromContext(r.Context())
		if !ok || email != "a@x.com" {
			t.Fatalf("expected email in context, got %q", email)
		}
	})).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
}

func TestRequireSelfDeniesOtherIdentity(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	handler := Verify(issuer)(RequireSelf("email")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for another identity")
	})))

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=b@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "a@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireSelfAllowsOwnIdentity(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	called := false
	handler := Verify(issuer)(RequireSelf("email")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "a@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
}

type stubRoles struct {
	admins map[string]bool
	err    error
}

func (s *stubRoles) IsAdmin(ctx context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.admins[email], nil
}

func TestRequireAdminDeniesNonAdmin(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	roles := &stubRoles{admins: map[string]bool{"boss@x.com": true}}
	handler := Verify(issuer)(RequireAdmin(roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for non-admin")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/doctors/d-1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "patient@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	roles := &stubRoles{admins: map[string]bool{"boss@x.com": true}}
	called := false
	handler := Verify(issuer)(RequireAdmin(roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodDelete, "/doctors/d-1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "boss@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
}

func TestRequireAdminLookupError(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	roles := &stubRoles{err: errors.New("store down")}
	handler := Verify(issuer)(RequireAdmin(roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on lookup error")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/doctors/d-1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, issuer, "boss@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
