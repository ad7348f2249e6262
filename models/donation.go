// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"
)

type Donation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
	Email    string `gorm:"size:255;not null;index:idx_donations_email" json:"email"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:128" json:"city"`
	State    string `gorm:"size:128" json:"state"`
	Zip      string `gorm:"size:16" json:"zip"`
	CardName string `gorm:"size:255" json:"cardName"`
	Amount   int64  `gorm:"not null" json:"amount"` // smallest currency unit, always positive

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_donations_created_at" json:"created_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationFilter represents filter criteria for donation queries
type DonationFilter struct {
	ID            *uint
	Email         *string
	AmountAbove   *int64
	AmountBelow   *int64
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
