package services

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every session token.
type Claims struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	Admin       bool   `json:"admin"`
	IsAnonymous bool   `json:"isAnonymous"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}

	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported JWT algorithm %q: only HS256, HS384 and HS512 are allowed", cfg.JWTAlgorithm)
	}

	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		method: method,
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}, nil
}

// CreateToken signs a token for the given subject, valid for the configured
// expiry from now.
func (s *TokenService) CreateToken(uid, email string, admin, isAnonymous bool) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		UID:         uid,
		Email:       email,
		Admin:       admin,
		IsAnonymous: isAnonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the token's claims, or ErrInvalidToken when the
// signature, algorithm or expiry does not check out.
func (s *TokenService) VerifyToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.Keyfunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Keyfunc resolves the HMAC secret for a parsed token, rejecting any other
// algorithm.
func (s *TokenService) Keyfunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
	}
	return s.secret, nil
}
