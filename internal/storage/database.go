package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swiftship/courier-backend/internal/models"
)

// DatabaseStore persists records in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM handle. The
// handle's connection pool is owned by the caller.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// OTP operations

func (s *DatabaseStore) CreateOTP(ctx context.Context, otp *models.OTP) (*models.OTP, error) {
	if err := s.db.WithContext(ctx).Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

func (s *DatabaseStore) GetUnverifiedOTP(ctx context.Context, phone string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.WithContext(ctx).
		Where("phone = ? AND verified = ?", phone, false).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (s *DatabaseStore) UpdateOTP(ctx context.Context, otp *models.OTP) error {
	return s.db.WithContext(ctx).Save(otp).Error
}

func (s *DatabaseStore) DeleteOTP(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.OTP{}, id).Error
}

func (s *DatabaseStore) DeleteUnverifiedOTPs(ctx context.Context, phone string) error {
	return s.db.WithContext(ctx).
		Where("phone = ? AND verified = ?", phone, false).
		Delete(&models.OTP{}).Error
}

func (s *DatabaseStore) DeleteExpiredOTPs(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}

// Booking operations

func (s *DatabaseStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *DatabaseStore) GetBookingByAWB(ctx context.Context, awb string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Where("awb = ?", awb).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *DatabaseStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *DatabaseStore) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}
