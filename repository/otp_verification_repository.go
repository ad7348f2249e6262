// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// OTPVerificationRepositoryImpl implements OTPVerificationRepository interface
type OTPVerificationRepositoryImpl struct {
	*BaseRepository[models.OTPVerification, models.OTPVerificationFilter]
}

// NewOTPVerificationRepository creates a new OTP verification repository
func NewOTPVerificationRepository(db *gorm.DB) OTPVerificationRepository {
	return &OTPVerificationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.OTPVerification, models.OTPVerificationFilter](db),
	}
}

// ByID retrieves an OTP verification by its ID with preloaded relationships
func (r *OTPVerificationRepositoryImpl) ByID(ctx context.Context, id uint) (*models.OTPVerification, error) {
	db := r.getDB(ctx)

	var otp models.OTPVerification
	err := db.Preload("User").
		Last(&otp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &otp, nil
}

// ByUserAndType retrieves OTP verifications for a user and specific type
func (r *OTPVerificationRepositoryImpl) ByUserAndType(ctx context.Context, userID uint, otpType string) ([]*models.OTPVerification, error) {
	filter := models.OTPVerificationFilter{
		UserID:  &userID,
		OTPType: &otpType,
	}

	return r.ByFilter(ctx, filter, "", 0, 0)
}

// ActiveByTargetAndCode retrieves the latest pending, non-expired OTP matching
// the target value and code
func (r *OTPVerificationRepositoryImpl) ActiveByTargetAndCode(ctx context.Context, targetValue, code, otpType string) (*models.OTPVerification, error) {
	db := r.getDB(ctx)

	var otp models.OTPVerification
	err := db.Where("target_value = ? AND otp_code = ? AND otp_type = ? AND status = ? AND expires_at > ?",
		targetValue, code, otpType, models.OTPStatusPending, utils.UTCNow()).
		Order("id DESC").
		First(&otp).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &otp, nil
}

// ListActiveOTPs retrieves all active (pending and non-expired) OTPs for a user
func (r *OTPVerificationRepositoryImpl) ListActiveOTPs(ctx context.Context, userID uint) ([]*models.OTPVerification, error) {
	filter := models.OTPVerificationFilter{
		UserID:   &userID,
		Status:   utils.ToPtr(models.OTPStatusPending),
		IsActive: utils.ToPtr(true), // This will filter non-expired pending OTPs
	}

	return r.ByFilter(ctx, filter, "", 0, 0)
}

// ExpireOldOTPs marks old OTPs as expired for a user and type (insert-only approach)
func (r *OTPVerificationRepositoryImpl) ExpireOldOTPs(ctx context.Context, userID uint, otpType string) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	// Find all pending OTPs for this user and type
	var oldOTPs []models.OTPVerification
	err = db.Where("user_id = ? AND otp_type = ? AND status = ?",
		userID, otpType, models.OTPStatusPending).
		Find(&oldOTPs).Error

	if err != nil {
		return err
	}

	// Create new expired records for each old OTP (immutable approach)
	for _, oldOTP := range oldOTPs {
		expiredOTP := models.OTPVerification{
			CorrelationID: oldOTP.CorrelationID, // Use same correlation ID
			UserID:        oldOTP.UserID,
			OTPCode:       oldOTP.OTPCode,
			OTPType:       oldOTP.OTPType,
			TargetValue:   oldOTP.TargetValue,
			Status:        models.OTPStatusExpired,
			AttemptsCount: oldOTP.AttemptsCount,
			MaxAttempts:   oldOTP.MaxAttempts,
			CreatedAt:     oldOTP.CreatedAt,
			ExpiresAt:     utils.UTCNow(), // Mark as expired now
			IPAddress:     oldOTP.IPAddress,
			UserAgent:     oldOTP.UserAgent,
		}

		err = db.Create(&expiredOTP).Error
		if err != nil {
			return err
		}
	}

	// Invalidate the original pending rows so they cannot match again
	err = db.Model(&models.OTPVerification{}).
		Where("user_id = ? AND otp_type = ? AND status = ?", userID, otpType, models.OTPStatusPending).
		Update("status", models.OTPStatusExpired).Error
	if err != nil {
		return err
	}

	return nil
}

// MarkUsed records the consumption of an OTP (insert-only approach)
func (r *OTPVerificationRepositoryImpl) MarkUsed(ctx context.Context, otp *models.OTPVerification) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	usedOTP := models.OTPVerification{
		CorrelationID: otp.CorrelationID, // Use same correlation ID
		UserID:        otp.UserID,
		OTPCode:       otp.OTPCode,
		OTPType:       otp.OTPType,
		TargetValue:   otp.TargetValue,
		Status:        models.OTPStatusUsed,
		AttemptsCount: otp.AttemptsCount + 1,
		MaxAttempts:   otp.MaxAttempts,
		CreatedAt:     otp.CreatedAt,
		ExpiresAt:     otp.ExpiresAt,
		VerifiedAt:    utils.UTCNowPtr(),
		IPAddress:     otp.IPAddress,
		UserAgent:     otp.UserAgent,
	}

	err = db.Create(&usedOTP).Error
	if err != nil {
		return err
	}

	// Retire the original pending row so the code cannot be replayed
	err = db.Model(&models.OTPVerification{}).
		Where("id = ?", otp.ID).
		Update("status", models.OTPStatusUsed).Error
	if err != nil {
		return err
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *OTPVerificationRepositoryImpl) applyFilter(query *gorm.DB, filter models.OTPVerificationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.OTPType != nil {
		query = query.Where("otp_type = ?", *filter.OTPType)
	}

	if filter.OTPCode != nil {
		query = query.Where("otp_code = ?", *filter.OTPCode)
	}

	if filter.TargetValue != nil {
		query = query.Where("target_value = ?", *filter.TargetValue)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}

	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	if filter.ExpiresAfter != nil {
		query = query.Where("expires_at > ?", *filter.ExpiresAfter)
	}

	if filter.ExpiresBefore != nil {
		query = query.Where("expires_at < ?", *filter.ExpiresBefore)
	}

	// Special handling for IsActive - filter non-expired pending OTPs
	if filter.IsActive != nil && *filter.IsActive {
		query = query.Where("status = ? AND expires_at > ?", models.OTPStatusPending, utils.UTCNow())
	}

	return query
}

// ByFilter retrieves OTP verifications based on filter criteria
func (r *OTPVerificationRepositoryImpl) ByFilter(ctx context.Context, filter models.OTPVerificationFilter, orderBy string, limit, offset int) ([]*models.OTPVerification, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OTPVerification{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var otps []*models.OTPVerification
	err := query.Find(&otps).Error
	if err != nil {
		return nil, err
	}

	return otps, nil
}

// Count returns the number of OTP verifications matching the filter
func (r *OTPVerificationRepositoryImpl) Count(ctx context.Context, filter models.OTPVerificationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OTPVerification{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any OTP verification matching the filter exists
func (r *OTPVerificationRepositoryImpl) Exists(ctx context.Context, filter models.OTPVerificationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetLatestByCorrelationID retrieves the latest OTP record for a given correlation ID
func (r *OTPVerificationRepositoryImpl) GetLatestByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*models.OTPVerification, error) {
	db := r.getDB(ctx)

	var otp models.OTPVerification
	err := db.Where("correlation_id = ?", correlationID).
		Order("id DESC").
		First(&otp).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &otp, nil
}
