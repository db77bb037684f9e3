package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func newAuthApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), svc, NewRateLimiter(60, 60))
	return app, mock, svc
}

func TestAuthHandlersRegisterLoginMe(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	createdAt := time.Now()
	expectNoSuchEmail(mock, "user@example.com")
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "user", "user@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	registerBody, _ := json.Marshal(RegisterRequest{Username: "user", Email: "user@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %v %d", err, resp.StatusCode)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if !session.Success || session.Token == "" || session.User.Email != "user@example.com" {
		t.Fatalf("unexpected register response: %+v", session)
	}

	mock.ExpectQuery(`SELECT id, username, email, created_at`).
		WithArgs(session.User.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "created_at"}).
			AddRow(session.User.ID, "user", "user@example.com", createdAt))

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("me status: %v %d", err, resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthHandlersRegisterWireShape(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	expectNoSuchEmail(mock, "dana@example.com")
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "Dana", "dana@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	// Clients post the display name under "name".
	body := []byte(`{"name":"Dana","email":"dana@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %v %d", err, resp.StatusCode)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if session.User.Username != "Dana" {
		t.Fatalf("expected name bound from wire, got %+v", session.User)
	}
}

func TestAuthHandlersRegisterConflict(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	mock.ExpectQuery(`SELECT 1 FROM users`).
		WithArgs("taken@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	body, _ := json.Marshal(RegisterRequest{Username: "user", Email: "taken@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %v %d", err, resp.StatusCode)
	}
}

func TestAuthHandlersLoginBadCredentials(t *testing.T) {
	app, mock, _ := newAuthApp(t)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	body := []byte(`{"email":"nobody@example.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v %d", err, resp.StatusCode)
	}
}

func TestAuthHandlersLoginMissingFields(t *testing.T) {
	app, _, _ := newAuthApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"email":""}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v %d", err, resp.StatusCode)
	}
}

func TestAuthHandlersLoginRateLimited(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), NewService("test-secret", mock), NewRateLimiter(1, 2))

	body := []byte(`{"email":"nobody@example.com","password":"password123"}`)
	var last int
	for i := 0; i < 3; i++ {
		mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at`).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected third attempt limited with 429, got %d", last)
	}
}

func TestAuthHandlersLogout(t *testing.T) {
	app, _, svc := newAuthApp(t)

	token, _ := svc.signToken("user-1")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status: %v %d", err, resp.StatusCode)
	}

	// no token, no logout
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %v %d", err, resp.StatusCode)
	}
}
