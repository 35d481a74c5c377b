package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/apperrors"
	"github.com/swiftship/courier-backend/internal/config"
	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/storage"
	"github.com/swiftship/courier-backend/internal/utils"
)

// phonePattern accepts E.164-style numbers: leading + then 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[0-9]{7,15}$`)

// OTPService owns the one-time password lifecycle: generation, delivery,
// verification and cleanup of superseded records.
type OTPService struct {
	store   storage.Store
	gateway SMSGateway
	log     *zap.Logger

	codeLength  int
	ttl         time.Duration
	maxAttempts int

	// injectable for deterministic expiry tests
	now func() time.Time
}

// NewOTPService creates an OTP lifecycle manager.
func NewOTPService(store storage.Store, gateway SMSGateway, cfg config.OTPConfig, log *zap.Logger) *OTPService {
	return &OTPService{
		store:       store,
		gateway:     gateway,
		log:         log,
		codeLength:  cfg.CodeLength,
		ttl:         cfg.TTL,
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
}

// TTL returns the validity window applied to generated codes.
func (s *OTPService) TTL() time.Duration { return s.ttl }

// MaxAttempts returns the verification attempt budget per code.
func (s *OTPService) MaxAttempts() int { return s.maxAttempts }

// NormalizePhone trims whitespace around a submitted phone number.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// Generate issues a fresh code for the number, invalidating any prior
// unconsumed code, and persists the record only after the SMS gateway
// acknowledges delivery.
func (s *OTPService) Generate(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	phone := NormalizePhone(phoneNumber)
	if !phonePattern.MatchString(phone) {
		return nil, apperrors.ErrInvalidPhoneNumber
	}

	code, err := utils.RandomDigits(s.codeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	// Best-effort: a stale unverified record that survives this delete is
	// still unreachable once the new record is inserted, since lookups pick
	// the most recent one.
	if err := s.store.DeleteUnverifiedOTPs(ctx, phone); err != nil {
		s.log.Warn("failed to delete superseded OTP records", zap.String("phone", phone), zap.Error(err))
	}

	body := fmt.Sprintf("Your SwiftShip verification code is %s. It expires in %d minutes.",
		code, int(s.ttl.Minutes()))
	if _, err := s.gateway.Send(ctx, phone, body); err != nil {
		return nil, &apperrors.DeliveryError{Err: err}
	}

	otp := &models.OTP{
		Phone:       phone,
		Code:        code,
		ExpiresAt:   s.now().Add(s.ttl),
		Attempts:    0,
		MaxAttempts: s.maxAttempts,
	}
	created, err := s.store.CreateOTP(ctx, otp)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "create OTP", Err: err}
	}

	s.log.Info("OTP generated", zap.String("phone", phone), zap.Time("expires_at", created.ExpiresAt))
	return created, nil
}

// Verify checks a submitted code against the unverified record for the
// number. A verified record is consumed: later lookups no longer match it,
// so a fresh Generate is needed once a booking has spent the verification.
func (s *OTPService) Verify(ctx context.Context, phoneNumber, code string) (*models.OTP, error) {
	phone := NormalizePhone(phoneNumber)

	otp, err := s.store.GetUnverifiedOTP(ctx, phone)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrOTPNotFound
		}
		return nil, &apperrors.StorageError{Op: "OTP lookup", Err: err}
	}

	if s.now().After(otp.ExpiresAt) {
		s.discard(ctx, otp)
		return nil, apperrors.ErrOTPExpired
	}

	if otp.Attempts >= otp.MaxAttempts {
		s.discard(ctx, otp)
		return nil, apperrors.ErrOTPAttemptsExhausted
	}

	otp.Attempts++

	if otp.Code != code {
		if err := s.store.UpdateOTP(ctx, otp); err != nil {
			return nil, &apperrors.StorageError{Op: "OTP attempt update", Err: err}
		}
		return nil, &apperrors.MismatchError{RemainingAttempts: otp.MaxAttempts - otp.Attempts}
	}

	otp.Verified = true
	if err := s.store.UpdateOTP(ctx, otp); err != nil {
		return nil, &apperrors.StorageError{Op: "OTP verification update", Err: err}
	}

	s.log.Info("OTP verified", zap.String("phone", phone), zap.Int("attempts", otp.Attempts))
	return otp, nil
}

// discard removes a dead record. Its deletion failing only means the record
// lingers until the cleanup job sweeps it.
func (s *OTPService) discard(ctx context.Context, otp *models.OTP) {
	if err := s.store.DeleteOTP(ctx, otp.ID); err != nil {
		s.log.Warn("failed to delete dead OTP record", zap.Uint("id", otp.ID), zap.Error(err))
	}
}
