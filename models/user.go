// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`

	// EmpID is the external identity token handed out at signup (5 digits)
	EmpID string `gorm:"size:5;not null;uniqueIndex:uk_users_emp_id;index:idx_users_emp_id" json:"empId"`

	FirstName string `gorm:"size:255;not null" json:"firstName"`
	LastName  string `gorm:"size:255;not null" json:"lastName"`

	Email        string  `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Phone        string  `gorm:"size:15;not null" json:"phone"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	Address      *string `gorm:"size:255" json:"address,omitempty"`

	Role     string `gorm:"type:user_role_enum;not null;default:devotee;index:idx_users_role" json:"role"`
	IsActive *bool  `gorm:"default:true;index:idx_users_is_active" json:"is_active"`

	// Timestamps
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_users_last_login_at" json:"last_login_at,omitempty"`

	// Relations
	OTPVerifications []OTPVerification `gorm:"foreignKey:UserID" json:"-"`
	Sessions         []UserSession     `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs        []AuditLog        `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// User role constants
const (
	RoleDevotee = "devotee"
	RolePriest  = "priest"
	RoleAdmin   = "admin"
)

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	EmpID          *string
	Email          *string
	Phone          *string
	Role           *string
	IsActive       *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	LastLoginAfter *time.Time
}

func (u *User) IsPriest() bool {
	return u.Role == RolePriest
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
