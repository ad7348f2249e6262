// Package repository provides data access layer implementations using the repository pattern
package repository

import (
	"fmt"

	"github.com/templeworks/Gopuram/models"
	"gorm.io/gorm"
)

// enumDDL creates the enum types the models reference. CREATE TYPE has no
// IF NOT EXISTS form, so duplicates are swallowed.
var enumDDL = []string{
	`DO $$ BEGIN
		CREATE TYPE user_role_enum AS ENUM ('devotee', 'priest', 'admin');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
	`DO $$ BEGIN
		CREATE TYPE otp_type_enum AS ENUM ('password_reset');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
	`DO $$ BEGIN
		CREATE TYPE otp_status_enum AS ENUM ('pending', 'used', 'expired', 'failed');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
	`DO $$ BEGIN
		CREATE TYPE audit_action_enum AS ENUM (
			'signup_completed', 'priest_created',
			'login_successful', 'login_failed', 'logout',
			'password_reset_requested', 'password_reset_completed', 'password_reset_failed',
			'account_deleted', 'session_created', 'session_expired',
			'otp_generated', 'otp_failed'
		);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
}

// EnsureSchema creates the enum types and migrates every model
func EnsureSchema(db *gorm.DB) error {
	for _, ddl := range enumDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create enum type: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.OTPVerification{},
		&models.AuditLog{},
		&models.Appointment{},
		&models.Announcement{},
		&models.Service{},
		&models.Event{},
		&models.Donation{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
