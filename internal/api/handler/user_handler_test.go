package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// stubUserService satisfies ports.UserService for handler tests.
type stubUserService struct {
	lastCreate ports.CreateUserInput
	lastAlmaID string
	lastToken  string
	lastUpdate ports.UpdateProfileInput

	created *ports.CreatedUser
	user    *ports.UserData
	err     error
}

func (s *stubUserService) CreateUser(_ context.Context, input ports.CreateUserInput) (*ports.CreatedUser, error) {
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubUserService) FindByID(_ context.Context, almaID, accessToken string) (*ports.UserData, error) {
	s.lastAlmaID = almaID
	s.lastToken = accessToken
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, accessToken string, input ports.UpdateProfileInput) (*ports.UserData, error) {
	s.lastToken = accessToken
	s.lastUpdate = input
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) DeleteUser(_ context.Context, accessToken, almaID string) error {
	s.lastToken = accessToken
	s.lastAlmaID = almaID
	return s.err
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authed(c echo.Context) echo.Context {
	c.Set("alma_id", "ext-1")
	c.Set("username", "anasilva")
	c.Set("email", "ana@example.com")
	c.Set("access_token", "token-1")
	return c
}

const validSignup = `{
	"firstName": "Ana",
	"lastName": "Silva",
	"socialName": "Ana",
	"bornDate": "1990-03-12",
	"motherName": "Maria Silva",
	"username": "anasilva",
	"email": "ana@example.com",
	"phone": "+5511999990000",
	"password": "s3cret-pass",
	"passwordConfirmation": "s3cret-pass"
}`

func TestUserHandler_Register_Success(t *testing.T) {
	svc := &stubUserService{created: &ports.CreatedUser{
		ID:        "local-1",
		Name:      "Ana Silva",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/v1/users", validSignup)
	c.Request().Header.Set("Idempotency-Key", "key-1")

	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.Email != "ana@example.com" {
		t.Errorf("payload not forwarded, got %+v", svc.lastCreate)
	}
	if svc.lastCreate.IdempotencyKey != "key-1" {
		t.Errorf("idempotency key not forwarded, got %q", svc.lastCreate.IdempotencyKey)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body["id"] != "local-1" {
		t.Errorf("expected local id in response, got %v", body)
	}
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing email",
			body: `{"firstName": "Ana", "lastName": "Silva", "bornDate": "1990-03-12", "motherName": "M", "username": "ana", "phone": "1", "password": "s3cret-pass", "passwordConfirmation": "s3cret-pass"}`,
			want: "email is required",
		},
		{
			name: "password mismatch",
			body: `{"firstName": "Ana", "lastName": "Silva", "bornDate": "1990-03-12", "motherName": "M", "username": "ana", "email": "a@b.com", "phone": "1", "password": "s3cret-pass", "passwordConfirmation": "different"}`,
			want: "passwordconfirmation must match password",
		},
		{
			name: "bad born date",
			body: `{"firstName": "Ana", "lastName": "Silva", "bornDate": "12/03/1990", "motherName": "M", "username": "ana", "email": "a@b.com", "phone": "1", "password": "s3cret-pass", "passwordConfirmation": "s3cret-pass"}`,
			want: "borndate must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubUserService{})
			c, _ := newTestContext(http.MethodPost, "/v1/users", tt.body)

			err := h.Register(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if he.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", he.Code)
			}
			if msg, _ := he.Message.(string); !strings.Contains(msg, tt.want) {
				t.Errorf("expected message containing %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestUserHandler_Register_ServiceError(t *testing.T) {
	svc := &stubUserService{err: domain.NewClientError("user-service.createUser", "[ 'alma_id' ] already in use")}
	h := NewUserHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/v1/users", validSignup)
	err := h.Register(c)

	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("service errors must propagate untouched, got %v", err)
	}
	if appErr.Code != 400 {
		t.Errorf("expected 400, got %d", appErr.Code)
	}
}

func TestUserHandler_Me_Success(t *testing.T) {
	svc := &stubUserService{user: &ports.UserData{ID: "local-1", Name: "Ana Silva", Email: "ana@example.com"}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/users/me", "")
	if err := h.Me(authed(c)); err != nil {
		t.Fatalf("Me() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.lastAlmaID != "ext-1" || svc.lastToken != "token-1" {
		t.Errorf("identity not forwarded: alma_id=%q token=%q", svc.lastAlmaID, svc.lastToken)
	}
}

func TestUserHandler_Me_MissingIdentity(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodGet, "/v1/users/me", "")
	err := h.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Update_ForwardsOnlyProvidedFields(t *testing.T) {
	svc := &stubUserService{user: &ports.UserData{ID: "local-1"}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/v1/users/me", `{"email": "new@example.com"}`)
	if err := h.Update(authed(c)); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.lastUpdate.Email == nil || *svc.lastUpdate.Email != "new@example.com" {
		t.Errorf("expected email set, got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.FirstName != nil {
		t.Errorf("absent fields must stay nil, got %+v", svc.lastUpdate)
	}
}

func TestUserHandler_Update_InvalidField(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPatch, "/v1/users/me", `{"email": "not-an-email"}`)
	err := h.Update(authed(c))

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/v1/users/me", "")
	if err := h.Delete(authed(c)); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if svc.lastAlmaID != "ext-1" || svc.lastToken != "token-1" {
		t.Errorf("identity not forwarded: alma_id=%q token=%q", svc.lastAlmaID, svc.lastToken)
	}
}
