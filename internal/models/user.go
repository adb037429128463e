package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the local account created on first identity resolution.
// SubjectID is the identity provider's stable id and the sole
// de-duplication key; profile fields are never synced after creation.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	SubjectID   string `json:"subject_id" gorm:"uniqueIndex;not null;size:255"`
	DisplayName string `json:"display_name" gorm:"size:100"`
	Email       string `json:"email" gorm:"size:255"`

	// Aggregate typing statistics, recomputed from the full sample
	// history on every submission
	MaxTypingSpeed     float64 `json:"max_typing_speed" gorm:"not null;default:0"`
	AverageTypingSpeed float64 `json:"average_typing_speed" gorm:"not null;default:0"`

	Preferences datatypes.JSON `json:"preferences" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
