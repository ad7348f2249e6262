// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"
)

type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Image       *string   `gorm:"type:text" json:"image,omitempty"` // data URI, may be large
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_announcements_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// AnnouncementFilter represents filter criteria for announcement queries
type AnnouncementFilter struct {
	ID            *uint
	Title         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
