package models

import "time"

// OTP is a one-time password record tied to a phone number. At most one
// unverified record exists per number: generation deletes its predecessors
// before inserting a replacement.
type OTP struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Phone       string    `gorm:"not null;index" json:"phone"`
	Code        string    `gorm:"not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Verified    bool      `gorm:"default:false;index" json:"verified"`
	Attempts    int       `gorm:"default:0" json:"attempts"`
	MaxAttempts int       `gorm:"default:3" json:"max_attempts"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OTPSnapshot is the verification evidence embedded into a booking record.
type OTPSnapshot struct {
	Phone      string    `json:"phone"`
	VerifiedAt time.Time `json:"verified_at"`
}
