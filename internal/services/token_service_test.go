package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTAlgorithm: "HS256",
		JWTExpiry:    7 * 24 * time.Hour,
	}
}

func newTestTokenService(t *testing.T, cfg *config.Config) *TokenService {
	t.Helper()
	svc, err := NewTokenService(cfg)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, testConfig())

	token, err := svc.CreateToken("uid-1", "a@example.com", true, false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UID != "uid-1" || claims.Email != "a@example.com" || !claims.Admin || claims.IsAnonymous {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("expected 7 day lifetime, got %v", got)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, testConfig())
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.CreateToken("uid-1", "a@example.com", false, false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, testConfig())
	other := testConfig()
	other.JWTSecret = "another-secret"
	verifier := newTestTokenService(t, other)

	token, _ := issuer.CreateToken("uid-1", "a@example.com", false, false)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsOtherAlgorithm(t *testing.T) {
	hs512 := testConfig()
	hs512.JWTAlgorithm = "HS512"
	issuer := newTestTokenService(t, hs512)
	verifier := newTestTokenService(t, testConfig())

	token, _ := issuer.CreateToken("uid-1", "a@example.com", false, false)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, testConfig())
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, err := svc.VerifyToken(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestNewTokenServiceValidatesConfig(t *testing.T) {
	for _, alg := range []string{"RS256", "none", ""} {
		cfg := testConfig()
		cfg.JWTAlgorithm = alg
		if _, err := NewTokenService(cfg); err == nil {
			t.Errorf("algorithm %q: expected error", alg)
		}
	}

	cfg := testConfig()
	cfg.JWTSecret = ""
	if _, err := NewTokenService(cfg); err == nil {
		t.Error("expected error for empty secret")
	}
}
