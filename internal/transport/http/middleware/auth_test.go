package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/aduvernay/staffing-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer(ttl time.Duration) *auth.Issuer {
	return auth.NewIssuer([]byte(testKey), ttl)
}

// newEngine builds a minimal gin engine with the Auth gate protecting
// GET /protected. The handler echoes the person ID so we can assert the
// identity was attached.
func newEngine(issuer *auth.Issuer) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(issuer), func(c *gin.Context) {
		ident := middleware.IdentityFrom(c)
		c.String(http.StatusOK, "%d", ident.PersonID)
	})
	return r
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newEngine(newIssuer(time.Hour)).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns403(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	newEngine(newIssuer(time.Hour)).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_MalformedToken_Returns403(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	newEngine(newIssuer(time.Hour)).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns403(t *testing.T) {
	expired := newIssuer(-time.Hour)
	tok, err := expired.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	newEngine(newIssuer(time.Hour)).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns403(t *testing.T) {
	other := auth.NewIssuer([]byte("different-key-that-is-32-chars!!"), time.Hour)
	tok, err := other.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	newEngine(newIssuer(time.Hour)).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsIdentity(t *testing.T) {
	issuer := newIssuer(time.Hour)
	tok, err := issuer.Issue(42, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	newEngine(issuer).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != fmt.Sprintf("%d", 42) {
		t.Errorf("body = %q, want %q", got, "42")
	}
}
