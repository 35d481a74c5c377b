package storage

import (
	"context"
	"sync"
	"time"

	"github.com/swiftship/courier-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development.
type MemoryStore struct {
	otps     map[uint]*models.OTP
	bookings map[string]*models.Booking
	awbIndex map[string]string // AWB -> booking ID

	otpMu     sync.RWMutex
	bookingMu sync.RWMutex

	otpCounter uint
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		otps:     make(map[uint]*models.OTP),
		bookings: make(map[string]*models.Booking),
		awbIndex: make(map[string]string),
	}
}

// OTP operations

func (m *MemoryStore) CreateOTP(_ context.Context, otp *models.OTP) (*models.OTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	m.otpCounter++
	otp.ID = m.otpCounter
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = otp.CreatedAt

	stored := *otp
	m.otps[otp.ID] = &stored
	return otp, nil
}

func (m *MemoryStore) GetUnverifiedOTP(_ context.Context, phone string) (*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	var latest *models.OTP
	for _, otp := range m.otps {
		if otp.Phone != phone || otp.Verified {
			continue
		}
		if latest == nil || otp.ID > latest.ID {
			latest = otp
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	found := *latest
	return &found, nil
}

func (m *MemoryStore) UpdateOTP(_ context.Context, otp *models.OTP) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[otp.ID]; !exists {
		return ErrNotFound
	}
	otp.UpdatedAt = time.Now()
	updated := *otp
	m.otps[otp.ID] = &updated
	return nil
}

func (m *MemoryStore) DeleteOTP(_ context.Context, id uint) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	delete(m.otps, id)
	return nil
}

func (m *MemoryStore) DeleteUnverifiedOTPs(_ context.Context, phone string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	for id, otp := range m.otps {
		if otp.Phone == phone && !otp.Verified {
			delete(m.otps, id)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteExpiredOTPs(_ context.Context, before time.Time) (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var removed int64
	for id, otp := range m.otps {
		if otp.ExpiresAt.Before(before) {
			delete(m.otps, id)
			removed++
		}
	}
	return removed, nil
}

// Booking operations

func (m *MemoryStore) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	booking.CreatedAt = time.Now()
	stored := *booking
	m.bookings[booking.ID] = &stored
	m.awbIndex[booking.AWB] = booking.ID
	return booking, nil
}

func (m *MemoryStore) GetBookingByAWB(_ context.Context, awb string) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	id, exists := m.awbIndex[awb]
	if !exists {
		return nil, ErrNotFound
	}
	found := *m.bookings[id]
	return &found, nil
}

func (m *MemoryStore) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	booking, exists := m.bookings[id]
	if !exists {
		return nil, ErrNotFound
	}
	found := *booking
	return &found, nil
}

func (m *MemoryStore) CountBookings(_ context.Context) (int64, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	return int64(len(m.bookings)), nil
}
