package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, now: time.Now}
}

// Get returns the stored profile or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// Upsert creates the profile with defaults on first contact and afterwards
// only refreshes lastLogin.
func (s *ProfileService) Upsert(ctx context.Context, uid, email string, isAnonymous bool) (*models.UserProfile, error) {
	now := s.now().UTC()

	profile, err := s.Get(ctx, uid)
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Model(profile).Update("last_login", now).Error; err != nil {
			return nil, fmt.Errorf("failed to update last login: %w", err)
		}
		profile.LastLogin = now
		return profile, nil
	case !errors.Is(err, ErrProfileNotFound):
		return nil, err
	}

	profile = &models.UserProfile{
		UID:         uid,
		Email:       models.AnonymousEmail,
		DisplayName: models.AnonymousDisplayName,
		IsAnonymous: isAnonymous,
		Preferences: datatypes.NewJSONType(models.DefaultPreferences()),
		CreatedAt:   now,
		LastLogin:   now,
	}
	if email != "" {
		profile.Email = email
		profile.DisplayName = strings.SplitN(email, "@", 2)[0]
	}

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}
