// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"
)

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        string    `gorm:"size:64" json:"date"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_events_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// EventFilter represents filter criteria for event queries
type EventFilter struct {
	ID            *uint
	Title         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
