package alma

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

func profileJSON() string {
	return `{
		"id": "ext-1",
		"personal": {"firstName": "Ana", "lastName": "Silva", "socialName": "Ana", "bornDate": "1990-03-12", "motherName": "Maria Silva"},
		"contact": {"username": "anasilva", "email": "ana@example.com", "phone": "+5511999990000"},
		"security": {"status": "active"},
		"createdAt": "2024-05-01T12:00:00Z",
		"updatedAt": "2024-05-02T08:30:00Z"
	}`
}

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		SignupURL:     serverURL + "/signup",
		GetUserURL:    serverURL + "/user",
		UpdateUserURL: serverURL + "/user",
		DeleteUserURL: serverURL + "/user",
	}, zerolog.Nop())
}

func TestClient_CreateProfile_NoBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(profileJSON()))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	profile, err := client.CreateProfile(context.Background(), ports.CreateProfileInput{
		FirstName:     "Ana",
		LastName:      "Silva",
		Email:         "ana@example.com",
		Password:      "s3cret-pass",
		OriginChannel: "WOPHI",
	})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if gotAuth != "" {
		t.Errorf("signup must not carry a bearer token, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["originChannel"] != "WOPHI" {
		t.Errorf("expected origin channel in body, got %v", gotBody["originChannel"])
	}
	if profile.ID != "ext-1" || profile.Personal.FirstName != "Ana" {
		t.Errorf("profile not decoded: %+v", profile)
	}
}

func TestClient_GetProfile_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(profileJSON()))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	profile, err := client.GetProfile(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if profile.Contact.Email != "ana@example.com" {
		t.Errorf("profile not decoded: %+v", profile)
	}
}

func TestClient_UpdateProfile_OmitsNilFields(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(profileJSON()))
	}))
	defer srv.Close()

	email := "new@example.com"
	client := newTestClient(srv.URL)
	if _, err := client.UpdateProfile(context.Background(), "token-123", ports.UpdateProfileInput{Email: &email}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}
	if gotBody["email"] != "new@example.com" {
		t.Errorf("expected email in body, got %v", gotBody)
	}
	if _, present := gotBody["firstName"]; present {
		t.Errorf("nil fields must not be serialized, got %v", gotBody)
	}
}

func TestClient_DeleteProfile_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if err := client.DeleteProfile(context.Background(), "token-123"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
}

func TestClient_RemoteErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"status": 409, "code": 1201, "message": "email already registered"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetProfile(context.Background(), "token-123")

	var remote *domain.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != 409 || remote.Code != 1201 || remote.Message != "email already registered" {
		t.Errorf("payload not carried over: %+v", remote)
	}
}

func TestClient_UnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream down</html>"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetProfile(context.Background(), "token-123")

	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != 500 || appErr.Message != "alma request failed" {
		t.Errorf("expected 500 %q, got %d %q", "alma request failed", appErr.Code, appErr.Message)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := newTestClient(srv.URL)
	_, err := client.GetProfile(context.Background(), "token-123")

	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != 500 || appErr.Message != "alma request failed" {
		t.Errorf("expected 500 %q, got %d %q", "alma request failed", appErr.Code, appErr.Message)
	}
}

func TestClient_InvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetProfile(context.Background(), "token-123")

	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != "invalid alma response" {
		t.Errorf("expected %q, got %q", "invalid alma response", appErr.Message)
	}
}
