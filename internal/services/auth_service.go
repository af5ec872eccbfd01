package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
	"github.com/google/uuid"
)

const minPasswordLength = 6

type AuthService struct {
	identity IdentityProvider
	profiles *ProfileService
	tokens   *TokenService
}

func NewAuthService(identity IdentityProvider, profiles *ProfileService, tokens *TokenService) *AuthService {
	return &AuthService{
		identity: identity,
		profiles: profiles,
		tokens:   tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("password must be at least 6 characters")
	}

	uid, err := s.identity.SignUp(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	// The provider account already exists at this point; a failure here leaves
	// it without a profile until the next successful login creates one.
	profile, err := s.profiles.Upsert(ctx, uid, email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", uid, err)
	}

	return s.issue(profile)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}

	uid, err := s.identity.SignIn(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Upsert(ctx, uid, email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh profile for %s: %w", uid, err)
	}

	return s.issue(profile)
}

// LoginAnonymous mints a token for a fresh local subject. Nothing is stored.
func (s *AuthService) LoginAnonymous() (*dto.AuthResponse, error) {
	uid := "anon_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	token, err := s.tokens.CreateToken(uid, models.AnonymousEmail, false, true)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			UID:         uid,
			Email:       models.AnonymousEmail,
			DisplayName: models.AnonymousDisplayName,
			Admin:       false,
			IsAnonymous: true,
		},
	}, nil
}

func (s *AuthService) issue(profile *models.UserProfile) (*dto.AuthResponse, error) {
	token, err := s.tokens.CreateToken(profile.UID, profile.Email, profile.Admin, false)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			UID:         profile.UID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
			Admin:       profile.Admin,
			IsAnonymous: false,
		},
	}, nil
}
