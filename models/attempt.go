package models

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is the durable record of a completed quiz session, written once
// when the session is sealed.
type Attempt struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	SessionID   string         `json:"session_id" gorm:"not null;index"`
	Category    string         `json:"category" gorm:"not null"`
	Correct     int            `json:"correct" gorm:"not null"`
	Total       int            `json:"total" gorm:"not null"`
	Percentage  int            `json:"percentage" gorm:"not null"`
	TimeTaken   int            `json:"time_taken" gorm:"not null"` // seconds
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
