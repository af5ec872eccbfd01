package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
)

func TestProfileUpsertCreatesDefaults(t *testing.T) {
	svc := NewProfileService(dbtest.New(t))
	ctx := context.Background()

	profile, err := svc.Upsert(ctx, "uid-1", "jane.doe@example.com", false)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if profile.DisplayName != "jane.doe" || profile.Admin || profile.IsAnonymous {
		t.Errorf("unexpected profile: %+v", profile)
	}

	stored, err := svc.Get(ctx, "uid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prefs := stored.Preferences.Data(); prefs != models.DefaultPreferences() {
		t.Errorf("unexpected preferences: %+v", prefs)
	}
}

func TestProfileUpsertRefreshesLastLogin(t *testing.T) {
	svc := NewProfileService(dbtest.New(t))
	ctx := context.Background()

	first := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	if _, err := svc.Upsert(ctx, "uid-1", "a@example.com", false); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := first.Add(2 * time.Hour)
	svc.now = func() time.Time { return second }
	if _, err := svc.Upsert(ctx, "uid-1", "changed@example.com", false); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	stored, _ := svc.Get(ctx, "uid-1")
	if !stored.CreatedAt.Equal(first) {
		t.Errorf("createdAt changed: %v", stored.CreatedAt)
	}
	if !stored.LastLogin.Equal(second) {
		t.Errorf("expected lastLogin %v, got %v", second, stored.LastLogin)
	}
	if stored.Email != "a@example.com" {
		t.Errorf("expected email untouched, got %q", stored.Email)
	}
}

func TestProfileUpsertWithoutEmail(t *testing.T) {
	svc := NewProfileService(dbtest.New(t))

	profile, err := svc.Upsert(context.Background(), "anon_1", "", true)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if profile.Email != models.AnonymousEmail || profile.DisplayName != models.AnonymousDisplayName || !profile.IsAnonymous {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestProfileGetMissing(t *testing.T) {
	svc := NewProfileService(dbtest.New(t))
	if _, err := svc.Get(context.Background(), "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
