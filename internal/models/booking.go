package models

import "time"

// Shipment type declarations required on the reverse route.
const (
	ShipmentTypeDocument    = "document"
	ShipmentTypeNonDocument = "non-document"
)

// BookingStatusPending is the status every booking is created with.
// Downstream status transitions are owned by fulfilment, not intake.
const BookingStatusPending = "pending"

// DeclaredAmountCeiling is the maximum insurable declared value for a
// non-document shipment, in currency units.
const DeclaredAmountCeiling = 1_000_000

// Party is one side of a shipment (sender or receiver).
type Party struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Phone       string   `json:"phone"`
	DialCode    string   `json:"dialCode"`
	Country     string   `json:"country"`
	City        string   `json:"city"`
	AddressLine string   `json:"addressLine"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// Item is a single shipped article.
type Item struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	WeightKg      float64 `json:"weightKg"`
	DeclaredValue float64 `json:"declaredValue"`
}

// Booking is the finalized record persisted at the end of a successful
// intake run. Created once; never mutated by the intake pipeline.
type Booking struct {
	ID              string `gorm:"primaryKey" json:"id"`
	ReferenceNumber string `gorm:"uniqueIndex;not null" json:"reference_number"`
	AWB             string `gorm:"uniqueIndex;not null" json:"awb"`
	Service         string `gorm:"not null" json:"service"`
	Route           Route  `gorm:"index" json:"route"`

	Sender   Party  `gorm:"embedded;embeddedPrefix:sender_" json:"sender"`
	Receiver Party  `gorm:"embedded;embeddedPrefix:receiver_" json:"receiver"`
	Items    []Item `gorm:"serializer:json" json:"items"`

	ShipmentType   string  `json:"shipment_type"`
	Insured        bool    `json:"insured"`
	DeclaredAmount float64 `json:"declared_amount"`

	// Raw identity-document payloads as submitted (base64 images).
	EIDFrontImage string `gorm:"type:text" json:"-"`
	EIDBackImage  string `gorm:"type:text" json:"-"`

	OTPVerification      OTPSnapshot      `gorm:"embedded;embeddedPrefix:otp_" json:"otp_verification"`
	IdentityVerification *NameMatchResult `gorm:"serializer:json" json:"identity_verification,omitempty"`
	ManualReview         bool             `json:"manual_review"`

	Status    string    `gorm:"not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingRequest is the wire shape of a booking submission.
type BookingRequest struct {
	Service        string   `json:"service"`
	Sender         *Party   `json:"sender"`
	Receiver       *Party   `json:"receiver"`
	Items          []Item   `json:"items"`
	ShipmentType   string   `json:"shipmentType"`
	Insured        bool     `json:"insured"`
	DeclaredAmount *float64 `json:"declaredAmount"`
	TermsAccepted  bool     `json:"termsAccepted"`

	OTPPhoneNumber string `json:"otpPhoneNumber"`
	OTP            string `json:"otp"`

	EIDFrontImage          string `json:"eidFrontImage"`
	EIDBackImage           string `json:"eidBackImage"`
	EIDFrontImageFirstName string `json:"eidFrontImageFirstName"`
	EIDFrontImageLastName  string `json:"eidFrontImageLastName"`
}
