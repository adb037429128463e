package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalculatorEntry is one saved calculation in a user's history
type CalculatorEntry struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"user_id" gorm:"index;not null;size:36"`
	Expression string    `json:"expression" gorm:"not null;size:500"`
	Result     string    `json:"result" gorm:"not null;size:100"`
	Timestamp  time.Time `json:"timestamp" gorm:"index;not null"`
}

func (CalculatorEntry) TableName() string {
	return "calculator_entries"
}

func (e *CalculatorEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return nil
}
