package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/smarttodo/tasks-api/internal/api/metrics"
	"github.com/smarttodo/tasks-api/internal/core/domain"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "signed-token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)
	before := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("ok"))

	c, rec := newRequestContext(t, http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret"}`), "")

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if len(resp) != 1 {
		t.Fatalf("login response must only carry the token: %+v", resp)
	}
	if got := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("ok")); got != before+1 {
		t.Fatalf("expected ok login counter %v, got %v", before+1, got)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)
	before := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("rejected"))

	c, _ := newRequestContext(t, http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`), "")

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("rejected")); got != before+1 {
		t.Fatalf("expected rejected login counter %v, got %v", before+1, got)
	}
}

func TestAuthHandler_Login_StoreFailureIsNotRejection(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, fmt.Errorf("find user: %w", domain.ErrStoreUnavailable)
		},
	}
	handler := NewAuthHandler(stub)
	before := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("rejected"))

	c, _ := newRequestContext(t, http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret"}`), "")

	if err := handler.Login(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues("rejected")); got != before {
		t.Fatalf("store failure counted as rejected login: %v -> %v", before, got)
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newRequestContext(t, http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":`), "")

	assertHTTPError(t, handler.Login(c), http.StatusBadRequest)
}
