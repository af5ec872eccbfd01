package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
	"github.com/rs/xid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultTaskVersion = "1.0.0"
	// Matches the size of the task.id column.
	maxTaskIDLength = 64
)

var requiredTaskFields = []string{"name", "category", "platform", "template", "framework"}

type TaskService struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{
		db:    db,
		now:   time.Now,
		newID: func() string { return xid.New().String() },
	}
}

// List returns active tasks in insertion order, optionally restricted to one
// framework.
func (s *TaskService) List(ctx context.Context, framework string) ([]map[string]interface{}, error) {
	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if framework != "" {
		query = query.Where("framework = ?", framework)
	}

	var tasks []models.Task
	if err := query.Order("created_at, id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views := make([]map[string]interface{}, 0, len(tasks))
	for i := range tasks {
		views = append(views, tasks[i].View())
	}
	return views, nil
}

// Get returns a task by id whether or not it is active.
func (s *TaskService) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	task, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return task.View(), nil
}

// Create validates the payload, stamps metadata and stores it. A string "id"
// in the payload selects the document id and overwrites any existing task
// with that id; otherwise a new id is generated.
func (s *TaskService) Create(ctx context.Context, payload map[string]interface{}, creatorUID string) (string, error) {
	for _, field := range requiredTaskFields {
		if v, ok := payload[field]; !ok || v == nil || v == "" {
			return "", invalid("missing required field: " + field)
		}
	}
	if framework, _ := payload["framework"].(string); !models.IsValidFramework(framework) {
		return "", invalid("framework must be one of: airflow, argo")
	}

	var id string
	if raw, ok := payload["id"]; ok && raw != nil && raw != "" {
		str, ok := raw.(string)
		if !ok {
			return "", invalid("id must be a string")
		}
		if len(str) > maxTaskIDLength {
			return "", invalid(fmt.Sprintf("id must be at most %d characters", maxTaskIDLength))
		}
		id = str
	}

	version := payload["version"]
	if version == nil {
		version = defaultTaskVersion
	}

	ts := s.timestamp()
	doc := make(datatypes.JSONMap, len(payload)+2)
	for k, v := range payload {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	doc["metadata"] = map[string]interface{}{
		"version":   version,
		"createdAt": ts,
		"updatedAt": ts,
		"createdBy": creatorUID,
	}
	doc["isActive"] = true

	if id == "" {
		task := models.Task{ID: s.newID(), Document: doc}
		if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
			return "", fmt.Errorf("failed to create task: %w", err)
		}
		return task.ID, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.load(tx, id)
		if errors.Is(err, ErrTaskNotFound) {
			return tx.Create(&models.Task{ID: id, Document: doc}).Error
		}
		if err != nil {
			return err
		}
		task.Document = doc
		return tx.Save(task).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to store task %s: %w", id, err)
	}
	return id, nil
}

// Update shallow-merges patch over the stored document and refreshes
// metadata.updatedAt. Only framework is revalidated.
func (s *TaskService) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if raw, ok := patch["framework"]; ok {
		if framework, _ := raw.(string); !models.IsValidFramework(framework) {
			return invalid("framework must be one of: airflow, argo")
		}
	}

	return s.mutate(ctx, id, func(doc datatypes.JSONMap) {
		for k, v := range patch {
			if k == "id" {
				continue
			}
			if k == "metadata" {
				if _, ok := v.(map[string]interface{}); !ok {
					continue
				}
			}
			doc[k] = v
		}
	})
}

// Delete marks the task inactive. The row is kept.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(doc datatypes.JSONMap) {
		doc["isActive"] = false
	})
}

func (s *TaskService) mutate(ctx context.Context, id string, apply func(doc datatypes.JSONMap)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.load(tx, id)
		if err != nil {
			return err
		}

		doc := make(datatypes.JSONMap, len(task.Document)+1)
		for k, v := range task.Document {
			doc[k] = v
		}
		apply(doc)

		metadata := map[string]interface{}{}
		if existing, ok := doc["metadata"].(map[string]interface{}); ok {
			for k, v := range existing {
				metadata[k] = v
			}
		}
		metadata["updatedAt"] = s.timestamp()
		doc["metadata"] = metadata

		task.Document = doc
		if err := tx.Save(task).Error; err != nil {
			return fmt.Errorf("failed to save task %s: %w", id, err)
		}
		return nil
	})
}

func (s *TaskService) load(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	return &task, nil
}

func (s *TaskService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// Count returns the number of stored tasks, active or not.
func (s *TaskService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}
