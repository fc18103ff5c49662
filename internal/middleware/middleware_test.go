package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue("session-1")
	if err != nil {
		t.Fatal(err)
	}
	id, err := issuer.Verify(token)
	if err != nil || id != "session-1" {
		t.Errorf("Verify = %q, %v", id, err)
	}
}

func TestTokenRejected(t *testing.T) {
	expired, _ := NewTokenIssuer("secret", -time.Minute).Issue("s")
	foreign, _ := NewTokenIssuer("other", time.Hour).Issue("s")
	issuer := NewTokenIssuer("secret", time.Hour)

	for name, token := range map[string]string{"expired": expired, "foreign": foreign, "garbage": "a.b.c"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/me", Auth(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})

	token, _ := issuer.Issue("abc")
	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("header %q: status = %d, want %d", tt.header, w.Code, tt.status)
		}
		if tt.status == http.StatusOK && w.Body.String() != "abc" {
			t.Errorf("session id = %q", w.Body.String())
		}
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("b") {
		t.Error("keys are limited independently")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("window should have moved on")
	}

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	if rl.Len() != 0 {
		t.Errorf("expected all keys to be dropped, %d left", rl.Len())
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(1, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, w.Code, want)
		}
	}
}
