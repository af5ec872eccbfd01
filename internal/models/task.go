package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FrameworkAirflow = "airflow"
	FrameworkArgo    = "argo"
)

// Task is a building-block definition for the workflow editor. The full
// document lives in Document; Framework and IsActive mirror the matching
// document keys so listings can be filtered in SQL.
type Task struct {
	ID        string            `gorm:"primaryKey;size:64"`
	Framework string            `gorm:"size:20;index"`
	IsActive  bool              `gorm:"not null;index"`
	Document  datatypes.JSONMap `gorm:"not null"`
	CreatedAt time.Time         `gorm:"index"`
	UpdatedAt time.Time
}

func (Task) TableName() string {
	return "task"
}

// BeforeSave keeps the indexed columns in sync with the document.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.Document == nil {
		t.Document = datatypes.JSONMap{}
	}
	t.Framework, _ = t.Document["framework"].(string)
	t.IsActive, _ = t.Document["isActive"].(bool)
	return nil
}

// View returns the document with the id injected.
func (t *Task) View() map[string]interface{} {
	view := make(map[string]interface{}, len(t.Document)+1)
	for k, v := range t.Document {
		view[k] = v
	}
	view["id"] = t.ID
	return view
}

func IsValidFramework(framework string) bool {
	return framework == FrameworkAirflow || framework == FrameworkArgo
}
