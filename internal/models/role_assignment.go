package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAssignment pre-approves an email for self-registration with the given role.
type RoleAssignment struct {
	ID    string `gorm:"primaryKey;size:36" json:"_id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Role  Role   `gorm:"not null;size:32" json:"role"`
}

func (r *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// NormalizeEmail is the canonical form used for every email lookup and write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
