// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"
)

type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Image       *string   `gorm:"type:text" json:"image,omitempty"` // data URI, may be large
	Description string    `gorm:"type:text;not null" json:"description"`
	Cost        int64     `gorm:"not null" json:"cost"` // smallest currency unit
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_services_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

// ServiceFilter represents filter criteria for service queries
type ServiceFilter struct {
	ID            *uint
	Title         *string
	CostBelow     *int64
	CostAbove     *int64
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
