package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AhmedSalahALghzaly/lats-go/internal/access"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func guardTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestWithRole(role enums.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/partners", nil)
	if role == enums.RoleGuest {
		return req
	}
	identity := &auth.Identity{
		User: &models.User{ID: "usr_1", Email: "actor@example.com"},
		Role: role,
	}
	return req.WithContext(WithIdentity(req.Context(), identity))
}

func TestGuardAnonymousOnRestrictedRouteGets401(t *testing.T) {
	next, called := okHandler()
	handler := Guard("partners", access.ActionList, guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleGuest))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if *called {
		t.Fatal("handler must not run for anonymous callers")
	}
}

func TestGuardInsufficientRoleGets403(t *testing.T) {
	next, called := okHandler()
	handler := Guard("partners", access.ActionList, guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleUser))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if *called {
		t.Fatal("handler must not run for unauthorized callers")
	}
}

func TestGuardAllowedRolePasses(t *testing.T) {
	next, called := okHandler()
	handler := Guard("partners", access.ActionList, guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleOwner))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !*called {
		t.Fatal("handler must run for allowed callers")
	}
}

func TestGuardUnlistedPairIsPublic(t *testing.T) {
	next, called := okHandler()
	handler := Guard("products", access.ActionList, guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleGuest))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !*called {
		t.Fatal("unlisted pairs must stay public")
	}
}

func TestRequireUserRejectsGuests(t *testing.T) {
	next, called := okHandler()
	handler := RequireUser(guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleGuest))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if *called {
		t.Fatal("handler must not run for guests")
	}
}

func TestRequireUserPassesAuthenticatedActors(t *testing.T) {
	next, called := okHandler()
	handler := RequireUser(guardTestLogger())(next)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, requestWithRole(enums.RoleUser))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !*called {
		t.Fatal("handler must run for signed-in users")
	}
}

func TestBearerTokenParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := bearerToken(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer tok_123")
	if got := bearerToken(req); got != "tok_123" {
		t.Fatalf("unexpected token %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := bearerToken(req); got != "" {
		t.Fatalf("expected empty token for basic auth, got %q", got)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4431"
	if got := clientIP(req); got != "10.0.0.5" {
		t.Fatalf("unexpected ip %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.5")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("unexpected ip %q", got)
	}
}
