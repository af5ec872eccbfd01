package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newFakeIdentityToolkit(t *testing.T) *httptest.Server {
	t.Helper()
	accounts := map[string]string{"known@example.com": "secret1"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
			return
		}

		var req identityToolkitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch r.URL.Path {
		case "/accounts:signUp":
			if _, exists := accounts[req.Email]; exists {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
				return
			}
			if len(req.Password) < 6 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"WEAK_PASSWORD : Password should be at least 6 characters"}}`))
				return
			}
			accounts[req.Email] = req.Password
			json.NewEncoder(w).Encode(identityToolkitResponse{LocalID: "uid-" + req.Email, Email: req.Email})
		case "/accounts:signInWithPassword":
			if pw, ok := accounts[req.Email]; !ok || pw != req.Password {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
				return
			}
			json.NewEncoder(w).Encode(identityToolkitResponse{LocalID: "uid-" + req.Email, Email: req.Email})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIdentityToolkitSignUp(t *testing.T) {
	srv := newFakeIdentityToolkit(t)
	client, err := NewIdentityToolkitClient(srv.URL+"/", "test-key", 5*time.Second)
	if err != nil {
		t.Fatalf("NewIdentityToolkitClient: %v", err)
	}
	ctx := context.Background()

	uid, err := client.SignUp(ctx, "new@example.com", "secret1")
	if err != nil || uid != "uid-new@example.com" {
		t.Fatalf("SignUp: uid=%q err=%v", uid, err)
	}

	if _, err := client.SignUp(ctx, "known@example.com", "secret1"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	_, err = client.SignUp(ctx, "weak@example.com", "123")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestIdentityToolkitSignIn(t *testing.T) {
	srv := newFakeIdentityToolkit(t)
	client, _ := NewIdentityToolkitClient(srv.URL, "test-key", 5*time.Second)
	ctx := context.Background()

	uid, err := client.SignIn(ctx, "known@example.com", "secret1")
	if err != nil || uid != "uid-known@example.com" {
		t.Fatalf("SignIn: uid=%q err=%v", uid, err)
	}

	if _, err := client.SignIn(ctx, "known@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := client.SignIn(ctx, "unknown@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityToolkitRequiresAPIKey(t *testing.T) {
	if _, err := NewIdentityToolkitClient("https://example.com", "", time.Second); err == nil {
		t.Error("expected error without API key")
	}
}

func TestIdentityToolkitTransportError(t *testing.T) {
	srv := newFakeIdentityToolkit(t)
	client, _ := NewIdentityToolkitClient(srv.URL, "test-key", time.Second)
	srv.Close()

	_, err := client.SignIn(context.Background(), "known@example.com", "secret1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected transport error, got %v", err)
	}
}
