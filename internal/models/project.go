package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     string `gorm:"not null;index;size:36"` // responsible user, not a foreign key constraint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectUpdate carries the fields of a partial project update.
type ProjectUpdate struct {
	Name        Optional[string]
	Description Optional[string]
	StartDate   Optional[time.Time]
	EndDate     Optional[time.Time]
	OwnerID     Optional[string]
}

func (u ProjectUpdate) Empty() bool {
	return !u.Name.Set && !u.Description.Set && !u.StartDate.Set && !u.EndDate.Set && !u.OwnerID.Set
}
