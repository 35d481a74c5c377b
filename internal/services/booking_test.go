package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/apperrors"
	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/storage"
)

type fakeAnalyzer struct {
	analysis *models.DocumentAnalysis
	err      error
	called   bool
}

func (a *fakeAnalyzer) Analyze(context.Context, string) (*models.DocumentAnalysis, error) {
	a.called = true
	if a.err != nil {
		return nil, a.err
	}
	return a.analysis, nil
}

type bookingEnv struct {
	store    *storage.MemoryStore
	otp      *OTPService
	analyzer *fakeAnalyzer
	svc      *BookingService
}

func newBookingEnv(t *testing.T) *bookingEnv {
	t.Helper()
	store := storage.NewMemoryStore()
	otp := newTestOTPService(store, &fakeGateway{})
	analyzer := &fakeAnalyzer{}
	awb := NewAWBGenerator(store, 10, zap.NewNop())
	svc := NewBookingService(store, otp, awb, analyzer, 0.6, zap.NewNop())
	return &bookingEnv{store: store, otp: otp, analyzer: analyzer, svc: svc}
}

// issueOTP generates a code for the number and returns it.
func (e *bookingEnv) issueOTP(t *testing.T, phone string) string {
	t.Helper()
	_, err := e.otp.Generate(context.Background(), phone)
	require.NoError(t, err)
	return storedCode(t, e.store, NormalizePhone(phone))
}

func validRequest(phone, code string) *models.BookingRequest {
	return &models.BookingRequest{
		Service: "UAE to India Express",
		Sender: &models.Party{
			FirstName:   "AHMED",
			LastName:    "ALI",
			Phone:       "501234567",
			Country:     "AE",
			City:        "Dubai",
			AddressLine: "Villa 12, Al Barsha",
		},
		Receiver: &models.Party{
			FirstName: "RAVI",
			LastName:  "KUMAR",
			Phone:     "9812345678",
			Country:   "IN",
			City:      "Kochi",
		},
		Items: []models.Item{
			{Description: "Clothes", Quantity: 2, WeightKg: 4.5},
		},
		TermsAccepted:  true,
		OTPPhoneNumber: phone,
		OTP:            code,
	}
}

func TestSubmitRejectsMissingOTPBeforeStoreMutation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{name: "missing otp code", mutate: func(r *models.BookingRequest) { r.OTP = "" }},
		{name: "missing otp phone", mutate: func(r *models.BookingRequest) { r.OTPPhoneNumber = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBookingEnv(t)
			req := validRequest("+971501234567", "123456")
			tt.mutate(req)

			_, err := env.svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			count, err := env.store.CountBookings(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestSubmitStructuralValidation(t *testing.T) {
	longAddress := strings.Repeat("x", 201)
	lat := 91.0
	okLat := 25.2
	lng := 55.3

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{name: "terms not accepted", mutate: func(r *models.BookingRequest) { r.TermsAccepted = false }},
		{name: "no sender", mutate: func(r *models.BookingRequest) { r.Sender = nil }},
		{name: "no receiver", mutate: func(r *models.BookingRequest) { r.Receiver = nil }},
		{name: "no items", mutate: func(r *models.BookingRequest) { r.Items = nil }},
		{name: "sender missing last name", mutate: func(r *models.BookingRequest) { r.Sender.LastName = " " }},
		{name: "receiver missing country", mutate: func(r *models.BookingRequest) { r.Receiver.Country = "" }},
		{name: "address line too long", mutate: func(r *models.BookingRequest) { r.Sender.AddressLine = longAddress }},
		{name: "latitude without longitude", mutate: func(r *models.BookingRequest) { r.Sender.Latitude = &okLat }},
		{name: "latitude out of range", mutate: func(r *models.BookingRequest) { r.Sender.Latitude = &lat; r.Sender.Longitude = &lng }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBookingEnv(t)
			code := env.issueOTP(t, "+971501234567")
			req := validRequest("+971501234567", code)
			tt.mutate(req)

			_, err := env.svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestSubmitReverseRouteShipmentTypeRules(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	tests := []struct {
		name           string
		shipmentType   string
		declaredAmount *float64
		wantErr        bool
		wantInsured    bool
		wantAmount     float64
	}{
		{name: "missing shipment type", shipmentType: "", wantErr: true},
		{name: "unknown shipment type", shipmentType: "parcel", wantErr: true},
		{name: "document forces uninsured", shipmentType: "document", declaredAmount: amount(9000), wantInsured: false, wantAmount: 0},
		{name: "non-document requires amount", shipmentType: "non-document", declaredAmount: nil, wantErr: true},
		{name: "non-document zero amount", shipmentType: "non-document", declaredAmount: amount(0), wantErr: true},
		{name: "non-document negative amount", shipmentType: "non-document", declaredAmount: amount(-5), wantErr: true},
		{name: "non-document above ceiling", shipmentType: "non-document", declaredAmount: amount(1_500_000), wantErr: true},
		{name: "non-document valid amount", shipmentType: "non-document", declaredAmount: amount(500), wantInsured: true, wantAmount: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBookingEnv(t)
			code := env.issueOTP(t, "+919812345678")
			req := validRequest("+919812345678", code)
			req.Service = "Reverse - India to UAE"
			req.ShipmentType = tt.shipmentType
			req.DeclaredAmount = tt.declaredAmount

			booking, err := env.svc.Submit(context.Background(), req)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RouteReverse, booking.Route)
			assert.Equal(t, tt.wantInsured, booking.Insured)
			assert.Equal(t, tt.wantAmount, booking.DeclaredAmount)
		})
	}
}

func TestSubmitOTPFailuresAreTerminal(t *testing.T) {
	env := newBookingEnv(t)
	env.issueOTP(t, "+971501234567")

	req := validRequest("+971501234567", "bad-code")
	_, err := env.svc.Submit(context.Background(), req)

	var mismatch *apperrors.MismatchError
	require.ErrorAs(t, err, &mismatch)

	count, err := env.store.CountBookings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitIdentityVerification(t *testing.T) {
	withIdentity := func(req *models.BookingRequest) {
		req.EIDFrontImage = "aW1hZ2U="
		req.EIDBackImage = "YmFjaw=="
		req.EIDFrontImageFirstName = "AHMED"
		req.EIDFrontImageLastName = "ALI"
	}

	t.Run("skipped without image and names", func(t *testing.T) {
		env := newBookingEnv(t)
		code := env.issueOTP(t, "+971501234567")

		booking, err := env.svc.Submit(context.Background(), validRequest("+971501234567", code))
		require.NoError(t, err)
		assert.False(t, env.analyzer.called)
		assert.Nil(t, booking.IdentityVerification)
		assert.False(t, booking.ManualReview)
	})

	t.Run("rejects non-identity document", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.analysis = &models.DocumentAnalysis{IsIdentityDocument: false}
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		_, err := env.svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrDocumentInvalid)
	})

	t.Run("no extractable name goes to manual review", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.analysis = &models.DocumentAnalysis{
			IsIdentityDocument: true,
			Side:               models.SideFront,
			Confidence:         0.9,
		}
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		booking, err := env.svc.Submit(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, booking.ManualReview)
		assert.Nil(t, booking.IdentityVerification)
	})

	t.Run("low-confidence mismatch rejects", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.analysis = &models.DocumentAnalysis{
			IsIdentityDocument: true,
			Side:               models.SideFront,
			Confidence:         0.9,
			ExtractedName:      "JOE BLOGGS",
		}
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		_, err := env.svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrIdentityMismatch)
	})

	t.Run("partial match above threshold proceeds flagged", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.analysis = &models.DocumentAnalysis{
			IsIdentityDocument: true,
			Side:               models.SideFront,
			Confidence:         0.9,
			ExtractedName:      "AHMED HASSAN", // first matches, last does not: 0.65
		}
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		booking, err := env.svc.Submit(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, booking.ManualReview)
		require.NotNil(t, booking.IdentityVerification)
		assert.False(t, booking.IdentityVerification.Match)
		assert.InDelta(t, 0.65, booking.IdentityVerification.Confidence, 0.001)
	})

	t.Run("full match proceeds clean", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.analysis = &models.DocumentAnalysis{
			IsIdentityDocument: true,
			Side:               models.SideFront,
			Confidence:         0.95,
			ExtractedName:      "AHMED MOHAMMED ALI",
		}
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		booking, err := env.svc.Submit(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, booking.ManualReview)
		require.NotNil(t, booking.IdentityVerification)
		assert.True(t, booking.IdentityVerification.Match)
		assert.InDelta(t, 0.85, booking.IdentityVerification.Confidence, 0.001)
	})

	t.Run("extraction outage goes to manual review", func(t *testing.T) {
		env := newBookingEnv(t)
		env.analyzer.err = errors.New("service unavailable")
		code := env.issueOTP(t, "+971501234567")
		req := validRequest("+971501234567", code)
		withIdentity(req)

		booking, err := env.svc.Submit(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, booking.ManualReview)
	})
}

func TestSubmitRoundTrip(t *testing.T) {
	env := newBookingEnv(t)
	code := env.issueOTP(t, " +971501234567 ")

	req := validRequest("+971501234567", code)
	booking, err := env.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.True(t, strings.HasPrefix(booking.ReferenceNumber, "SS-"))
	assert.Regexp(t, `^UI[A-Z]{2}[0-9]{3}[A-Z]{2}[A-Z0-9]{8}$`, booking.AWB)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "+971", booking.Sender.DialCode)
	assert.Equal(t, "+91", booking.Receiver.DialCode)

	// Read back from the store: the persisted record carries the exact AWB
	// returned and the normalized OTP phone.
	stored, err := env.store.GetBookingByAWB(context.Background(), booking.AWB)
	require.NoError(t, err)
	assert.Equal(t, booking.AWB, stored.AWB)
	assert.Equal(t, "+971501234567", stored.OTPVerification.Phone)
	assert.False(t, stored.OTPVerification.VerifiedAt.IsZero())

	// The OTP was consumed by this booking; a rerun needs a fresh code.
	_, err = env.svc.Submit(context.Background(), validRequest("+971501234567", code))
	assert.ErrorIs(t, err, apperrors.ErrOTPNotFound)
}
