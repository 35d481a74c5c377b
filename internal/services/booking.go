package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/apperrors"
	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/storage"
)

const maxAddressLineLength = 200

// BookingService runs the intake pipeline: structural validation, route
// rules, OTP verification, optional identity verification, tracking-code
// issuance and final assembly. Each stage can short-circuit the submission.
type BookingService struct {
	store    storage.Store
	otp      *OTPService
	awb      *AWBGenerator
	analyzer DocumentAnalyzer
	log      *zap.Logger

	matchThreshold float64
	now            func() time.Time
}

// NewBookingService wires the intake pipeline together.
func NewBookingService(
	store storage.Store,
	otp *OTPService,
	awb *AWBGenerator,
	analyzer DocumentAnalyzer,
	matchThreshold float64,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		store:          store,
		otp:            otp,
		awb:            awb,
		analyzer:       analyzer,
		log:            log,
		matchThreshold: matchThreshold,
		now:            time.Now,
	}
}

// Submit runs one submission through the pipeline and persists the booking.
func (s *BookingService) Submit(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := validateStructure(req); err != nil {
		return nil, err
	}

	route := DeriveRoute(req.Service)

	shipmentType, insured, declaredAmount, err := applyRouteRules(route, req)
	if err != nil {
		return nil, err
	}

	// OTP verification is mandatory and terminal on any failure.
	if req.OTPPhoneNumber == "" || req.OTP == "" {
		return nil, fmt.Errorf("%w: otpPhoneNumber and otp are required", apperrors.ErrValidation)
	}
	otpRecord, err := s.otp.Verify(ctx, req.OTPPhoneNumber, req.OTP)
	if err != nil {
		return nil, err
	}

	identity, manualReview, err := s.verifyIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	awb, err := s.awb.IssueUnique(ctx, route)
	if err != nil {
		return nil, err
	}

	booking := s.assemble(req, route, shipmentType, insured, declaredAmount, awb, otpRecord, identity, manualReview)

	if _, err := s.store.CreateBooking(ctx, booking); err != nil {
		// The OTP is already consumed at this point; the submitter must
		// re-generate before retrying. See DESIGN.md for the trade-off.
		return nil, &apperrors.StorageError{Op: "booking insert", Err: err}
	}

	s.log.Info("booking accepted",
		zap.String("awb", booking.AWB),
		zap.String("route", string(booking.Route)),
		zap.Bool("manual_review", booking.ManualReview))
	return booking, nil
}

// validateStructure enforces field presence and range rules that hold on
// every route.
func validateStructure(req *models.BookingRequest) error {
	if !req.TermsAccepted {
		return fmt.Errorf("%w: terms must be accepted", apperrors.ErrValidation)
	}
	if req.Sender == nil {
		return fmt.Errorf("%w: sender is required", apperrors.ErrValidation)
	}
	if req.Receiver == nil {
		return fmt.Errorf("%w: receiver is required", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	if err := validateParty("sender", req.Sender); err != nil {
		return err
	}
	return validateParty("receiver", req.Receiver)
}

func validateParty(role string, p *models.Party) error {
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: %s last name is required", apperrors.ErrValidation, role)
	}
	if strings.TrimSpace(p.Country) == "" {
		return fmt.Errorf("%w: %s country is required", apperrors.ErrValidation, role)
	}
	if len(p.AddressLine) > maxAddressLineLength {
		return fmt.Errorf("%w: %s address line exceeds %d characters", apperrors.ErrValidation, role, maxAddressLineLength)
	}

	switch {
	case p.Latitude == nil && p.Longitude == nil:
		// no geolocation supplied
	case p.Latitude == nil || p.Longitude == nil:
		return fmt.Errorf("%w: %s latitude and longitude must be provided together", apperrors.ErrValidation, role)
	case *p.Latitude < -90 || *p.Latitude > 90:
		return fmt.Errorf("%w: %s latitude out of range", apperrors.ErrValidation, role)
	case *p.Longitude < -180 || *p.Longitude > 180:
		return fmt.Errorf("%w: %s longitude out of range", apperrors.ErrValidation, role)
	}
	return nil
}

// applyRouteRules resolves shipment type, insurance and declared amount for
// the derived route. The reverse lane requires an explicit shipment-type
// declaration; documents are never insured, goods always are.
func applyRouteRules(route models.Route, req *models.BookingRequest) (shipmentType string, insured bool, declaredAmount float64, err error) {
	if route != models.RouteReverse {
		return req.ShipmentType, req.Insured, amountOrZero(req.DeclaredAmount), nil
	}

	switch req.ShipmentType {
	case models.ShipmentTypeDocument:
		return models.ShipmentTypeDocument, false, 0, nil
	case models.ShipmentTypeNonDocument:
		if req.DeclaredAmount == nil {
			return "", false, 0, fmt.Errorf("%w: declaredAmount is required for non-document shipments", apperrors.ErrValidation)
		}
		amount := *req.DeclaredAmount
		if amount <= 0 {
			return "", false, 0, fmt.Errorf("%w: declaredAmount must be greater than 0", apperrors.ErrValidation)
		}
		if amount > models.DeclaredAmountCeiling {
			return "", false, 0, fmt.Errorf("%w: declaredAmount exceeds the maximum of %d", apperrors.ErrValidation, models.DeclaredAmountCeiling)
		}
		return models.ShipmentTypeNonDocument, true, amount, nil
	default:
		return "", false, 0, fmt.Errorf("%w: shipmentType must be %q or %q", apperrors.ErrValidation,
			models.ShipmentTypeDocument, models.ShipmentTypeNonDocument)
	}
}

func amountOrZero(amount *float64) float64 {
	if amount == nil {
		return 0
	}
	return *amount
}

// verifyIdentity runs the conditional identity check. It is skipped entirely
// unless a front document image and names to verify against were supplied.
// A low-confidence non-match rejects the booking; everything short of that
// proceeds, flagged for manual review where warranted.
func (s *BookingService) verifyIdentity(ctx context.Context, req *models.BookingRequest) (*models.NameMatchResult, bool, error) {
	if req.EIDFrontImage == "" || req.EIDFrontImageFirstName == "" || req.EIDFrontImageLastName == "" {
		return nil, false, nil
	}

	analysis, err := s.analyzer.Analyze(ctx, req.EIDFrontImage)
	if err != nil {
		// Extraction being down should not block intake; the record is
		// routed to manual review instead.
		s.log.Warn("text extraction failed, routing to manual review", zap.Error(err))
		return nil, true, nil
	}

	if !analysis.IsIdentityDocument {
		return nil, false, apperrors.ErrDocumentInvalid
	}

	if analysis.ExtractedName == "" {
		s.log.Info("identity document accepted without extractable name",
			zap.String("side", analysis.Side),
			zap.Float64("confidence", analysis.Confidence))
		return nil, true, nil
	}

	result := CompareNames(analysis.ExtractedName, req.EIDFrontImageFirstName, req.EIDFrontImageLastName)
	if !result.Match {
		if result.Confidence < s.matchThreshold {
			return nil, false, fmt.Errorf("%w: %s", apperrors.ErrIdentityMismatch, result.Reason)
		}
		return &result, true, nil
	}
	return &result, false, nil
}

func (s *BookingService) assemble(
	req *models.BookingRequest,
	route models.Route,
	shipmentType string,
	insured bool,
	declaredAmount float64,
	awb string,
	otpRecord *models.OTP,
	identity *models.NameMatchResult,
	manualReview bool,
) *models.Booking {
	sender := *req.Sender
	receiver := *req.Receiver
	sender.DialCode = route.SenderDialCode()
	receiver.DialCode = route.ReceiverDialCode()

	id := uuid.NewString()
	return &models.Booking{
		ID:              id,
		ReferenceNumber: "SS-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10]),
		AWB:             awb,
		Service:         req.Service,
		Route:           route,
		Sender:          sender,
		Receiver:        receiver,
		Items:           req.Items,
		ShipmentType:    shipmentType,
		Insured:         insured,
		DeclaredAmount:  declaredAmount,
		EIDFrontImage:   req.EIDFrontImage,
		EIDBackImage:    req.EIDBackImage,
		OTPVerification: models.OTPSnapshot{
			Phone:      otpRecord.Phone,
			VerifiedAt: s.now(),
		},
		IdentityVerification: identity,
		ManualReview:         manualReview,
		Status:               models.BookingStatusPending,
	}
}

// Track looks a booking up by tracking code.
func (s *BookingService) Track(ctx context.Context, awb string) (*models.Booking, error) {
	booking, err := s.store.GetBookingByAWB(ctx, strings.ToUpper(strings.TrimSpace(awb)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, &apperrors.StorageError{Op: "booking lookup", Err: err}
	}
	return booking, nil
}
