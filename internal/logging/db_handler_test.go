package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
)

func TestDBHandlerStoresErrorsOnly(t *testing.T) {
	db := dbtest.New(t)
	h := NewDBHandler(db, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("not persisted")
	logger.Error("boom", "method", "POST", "path", "/api/tasks", "error", "db down", "uid", "u1", "attempt", 2)
	h.Stop()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(logs))
	}

	entry := logs[0]
	if entry.Message != "boom" || entry.Level != "ERROR" || entry.RequestID != "req-1" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Method != "POST" || entry.Path != "/api/tasks" || entry.Error != "db down" {
		t.Errorf("unexpected request columns: %+v", entry)
	}
	if entry.UID == nil || *entry.UID != "u1" {
		t.Errorf("unexpected uid: %v", entry.UID)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(entry.Extra, &extra); err != nil {
		t.Fatalf("extra: %v", err)
	}
	if extra["attempt"] != float64(2) {
		t.Errorf("unexpected extra: %v", extra)
	}
}

func TestDBHandlerWritesAfterStop(t *testing.T) {
	db := dbtest.New(t)
	h := NewDBHandler(db, time.Hour)
	h.Stop()
	h.Stop()

	slog.New(h).Error("late shutdown error", "error", "context canceled")

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(logs) != 1 || logs[0].Message != "late shutdown error" || logs[0].Error != "context canceled" {
		t.Errorf("expected the late record to be stored, got %+v", logs)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	db := dbtest.New(t)
	dbHandler := NewDBHandler(db, time.Hour)
	logger := slog.New(NewMultiHandler(Setup(slog.LevelError), dbHandler))

	logger.Error("fanned out")
	dbHandler.Stop()

	var n int64
	db.Model(&models.SystemLog{}).Count(&n)
	if n != 1 {
		t.Errorf("expected 1 stored record, got %d", n)
	}
}

func TestPurgeBefore(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now().UTC()

	h := NewDBHandler(db, time.Hour)
	for _, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-time.Minute)} {
		r := slog.NewRecord(at, slog.LevelError, "entry", 0)
		if err := h.Handle(context.Background(), r); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	h.Stop()

	deleted, err := PurgeBefore(context.Background(), db, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeBefore: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	var n int64
	db.Model(&models.SystemLog{}).Count(&n)
	if n != 1 {
		t.Errorf("expected 1 remaining, got %d", n)
	}
}
