package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IdentityToolkitClient talks to the hosted Identity Toolkit REST API
// (accounts:signUp and accounts:signInWithPassword).
type IdentityToolkitClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type identityToolkitRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityToolkitResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type identityToolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewIdentityToolkitClient(baseURL, apiKey string, timeout time.Duration) (*IdentityToolkitClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("identity toolkit API key is required")
	}
	return &IdentityToolkitClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}, nil
}

func (c *IdentityToolkitClient) SignUp(ctx context.Context, email, password string) (string, error) {
	status, body, err := c.post(ctx, "accounts:signUp", email, password)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		code := errorCode(body)
		switch {
		case code == "EMAIL_EXISTS":
			return "", ErrEmailTaken
		case code == "INVALID_EMAIL":
			return "", invalid("invalid email address")
		case strings.HasPrefix(code, "WEAK_PASSWORD"):
			return "", invalid("password must be at least 6 characters")
		}
		return "", fmt.Errorf("identity toolkit sign-up returned status %d: %s", status, code)
	}
	return decodeLocalID(body)
}

// SignIn verifies a password. Every non-200 answer maps to
// ErrInvalidCredentials so callers cannot tell unknown emails apart.
func (c *IdentityToolkitClient) SignIn(ctx context.Context, email, password string) (string, error) {
	status, body, err := c.post(ctx, "accounts:signInWithPassword", email, password)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", ErrInvalidCredentials
	}
	return decodeLocalID(body)
}

func (c *IdentityToolkitClient) post(ctx context.Context, method, email, password string) (int, []byte, error) {
	payload, err := json.Marshal(identityToolkitRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.baseURL + "/" + method + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("identity toolkit %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read identity toolkit response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func errorCode(body []byte) string {
	var e identityToolkitError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}

func decodeLocalID(body []byte) (string, error) {
	var r identityToolkitResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("failed to decode identity toolkit response: %w", err)
	}
	if r.LocalID == "" {
		return "", fmt.Errorf("identity toolkit response has no localId")
	}
	return r.LocalID, nil
}
