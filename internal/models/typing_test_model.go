package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TypingTest is a single immutable performance sample. It is owned by
// exactly one user and is never updated or deleted after insertion.
type TypingTest struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"index;not null;size:36"`

	WPM      float64 `json:"wpm" gorm:"not null"`
	Accuracy float64 `json:"accuracy" gorm:"not null"`
	Mistakes int     `json:"mistakes" gorm:"not null"`
	Duration int     `json:"duration" gorm:"not null"` // seconds

	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
}

func (TypingTest) TableName() string {
	return "typing_tests"
}

func (t *TypingTest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	return nil
}
