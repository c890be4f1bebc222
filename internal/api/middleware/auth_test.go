package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type stubAuthenticator struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.Identity, error)
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	return s.authenticateFn(ctx, username, password)
}

func newAuthContext(user, pass string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBasicAuth_ValidCredentials(t *testing.T) {
	stub := &stubAuthenticator{
		authenticateFn: func(_ context.Context, username, password string) (*domain.Identity, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected credentials %s/%s", username, password)
			}
			return &domain.Identity{UserID: 7, Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newAuthContext("alice", "secret")

	called := false
	handler := BasicAuth(stub)(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != int64(7) {
			t.Fatalf("user_id not set")
		}
		if c.Get(ContextUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(ContextRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	stub := &stubAuthenticator{
		authenticateFn: func(context.Context, string, string) (*domain.Identity, error) {
			t.Fatalf("authenticator should not be called")
			return nil, nil
		},
	}
	c, rec := newAuthContext("", "")

	handler := BasicAuth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) == "" {
		t.Fatalf("expected WWW-Authenticate challenge")
	}
}

func TestBasicAuth_WrongPassword(t *testing.T) {
	stub := &stubAuthenticator{
		authenticateFn: func(context.Context, string, string) (*domain.Identity, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newAuthContext("alice", "wrong")

	err := BasicAuth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestBasicAuth_LearnerForbidden(t *testing.T) {
	stub := &stubAuthenticator{
		authenticateFn: func(context.Context, string, string) (*domain.Identity, error) {
			return nil, domain.ErrRoleNotAllowed
		},
	}
	c, _ := newAuthContext("lee", "secret")

	err := BasicAuth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
