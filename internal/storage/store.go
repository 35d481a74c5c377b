package storage

import (
	"context"
	"errors"
	"time"

	"github.com/swiftship/courier-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no record. Services map it
// into their own error taxonomy.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the intake pipeline needs.
type Store interface {
	// OTP operations
	CreateOTP(ctx context.Context, otp *models.OTP) (*models.OTP, error)
	GetUnverifiedOTP(ctx context.Context, phone string) (*models.OTP, error)
	UpdateOTP(ctx context.Context, otp *models.OTP) error
	DeleteOTP(ctx context.Context, id uint) error
	DeleteUnverifiedOTPs(ctx context.Context, phone string) error
	DeleteExpiredOTPs(ctx context.Context, before time.Time) (int64, error)

	// Booking operations
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingByAWB(ctx context.Context, awb string) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	CountBookings(ctx context.Context) (int64, error)
}
