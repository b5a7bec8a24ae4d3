package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	Description string `gorm:"not null"`
	DueDate     *time.Time
	Status      TaskStatus `gorm:"not null;size:32;default:NEW"`
	OwnerID     string     `gorm:"index;size:36"` // assignee
	ProjectID   string     `gorm:"index;size:36"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusNew
	}
	return nil
}

// TaskUpdate carries the fields of a partial task update.
type TaskUpdate struct {
	Description Optional[string]
	DueDate     Optional[time.Time]
	Status      Optional[TaskStatus]
	OwnerID     Optional[string]
	ProjectID   Optional[string]
}

func (u TaskUpdate) Empty() bool {
	return !u.Description.Set && !u.DueDate.Set && !u.Status.Set && !u.OwnerID.Set && !u.ProjectID.Set
}
