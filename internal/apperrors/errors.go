package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the booking intake pipeline. Handlers map these to
// HTTP statuses; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrInvalidPhoneNumber is returned when a phone number is missing the
	// leading + or contains anything other than 7-15 digits after it.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrValidation is returned for malformed or missing submission fields.
	ErrValidation = errors.New("validation failed")

	// ErrOTPNotFound is returned when no unverified OTP exists for a phone number.
	ErrOTPNotFound = errors.New("no active OTP found for this number")

	// ErrOTPExpired is returned when the OTP window has elapsed. The record
	// is deleted before this is returned.
	ErrOTPExpired = errors.New("OTP has expired")

	// ErrOTPAttemptsExhausted is returned when the attempt budget is spent.
	// The record is deleted before this is returned.
	ErrOTPAttemptsExhausted = errors.New("maximum OTP attempts exceeded")

	// ErrDocumentInvalid is returned when the extraction service classifies
	// an uploaded image as not an identity document.
	ErrDocumentInvalid = errors.New("uploaded image is not a valid identity document")

	// ErrIdentityMismatch is returned when the extracted document name does
	// not match the provided names with sufficient confidence.
	ErrIdentityMismatch = errors.New("identity document name does not match provided names")

	// ErrAWBGenerationExhausted is returned when AWB collision retries run
	// out. Fatal for the request; a resubmission gets a fresh retry budget.
	ErrAWBGenerationExhausted = errors.New("failed to generate a unique tracking code")

	// ErrBookingNotFound is returned by tracking lookups for unknown AWBs.
	ErrBookingNotFound = errors.New("booking not found")
)

// MismatchError reports an incorrect OTP code along with how many attempts
// remain before the record is discarded.
type MismatchError struct {
	RemainingAttempts int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("incorrect OTP, %d attempts remaining", e.RemainingAttempts)
}

// DeliveryError wraps an SMS gateway failure. No OTP record exists when this
// is returned.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver OTP: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// StorageError wraps a persistence failure at any pipeline stage.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
