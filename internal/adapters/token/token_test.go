package token_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shahedul-alam/the-hotel-server/internal/adapters/token"
	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := token.New("test-secret", time.Hour, false)

	tok, err := m.Issue(token.Identity{Email: "alice@example.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Email != "alice@example.com" || id.Name != "Alice" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := token.New("secret-a", time.Hour, false).Issue(token.Identity{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = token.New("secret-b", time.Hour, false).Verify(tok)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := token.New("test-secret", time.Hour, false)
	tok, _ := m.Issue(token.Identity{Email: "a@b.c"})

	parts := strings.Split(tok, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := m.Verify(strings.Join(parts, ".")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := token.New("test-secret", -time.Minute, false)
	tok, _ := m.Issue(token.Identity{Email: "a@b.c"})
	if _, err := m.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestCookieLifecycle(t *testing.T) {
	m := token.New("test-secret", time.Hour, false)

	rr := httptest.NewRecorder()
	m.SetCookie(rr, "tok-value")
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies", len(cookies))
	}
	c := cookies[0]
	if c.Name != token.CookieName || c.Value != "tok-value" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly {
		t.Fatalf("auth cookie must be http-only")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("dev cookie should be SameSite=Lax")
	}

	rr = httptest.NewRecorder()
	m.ClearCookie(rr)
	c = rr.Result().Cookies()[0]
	if c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("clear cookie did not expire: %+v", c)
	}
}

func TestSecureCookieUsesSameSiteNone(t *testing.T) {
	m := token.New("test-secret", time.Hour, true)
	rr := httptest.NewRecorder()
	m.SetCookie(rr, "tok")
	c := rr.Result().Cookies()[0]
	if !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Fatalf("prod cookie must be Secure + SameSite=None: %+v", c)
	}
}
