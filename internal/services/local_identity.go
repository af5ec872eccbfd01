package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalIdentityProvider keeps bcrypt credentials in the application database.
// It stands in for the hosted provider in development and tests.
type LocalIdentityProvider struct {
	db *gorm.DB
}

func NewLocalIdentityProvider(db *gorm.DB) *LocalIdentityProvider {
	return &LocalIdentityProvider{db: db}
}

func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{
		UID:          strings.ReplaceAll(uuid.NewString(), "-", ""),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
	}
	// The unique index on email decides between concurrent sign-ups.
	if err := p.db.WithContext(ctx).Create(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create credential: %w", err)
	}
	return cred.UID, nil
}

func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	var cred models.Credential
	if err := p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return cred.UID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
