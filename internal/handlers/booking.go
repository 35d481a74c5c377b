package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/services"
)

// BookingHandler exposes booking submission and tracking endpoints.
type BookingHandler struct {
	bookings   *services.BookingService
	log        *zap.Logger
	production bool
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(bookings *services.BookingService, production bool, log *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, log: log, production: production}
}

// Create accepts a booking submission and runs the intake pipeline.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req models.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	booking, err := h.bookings.Submit(c.Context(), &req)
	if err != nil {
		h.log.Warn("booking submission rejected", zap.Error(err))
		return errorResponse(c, err, h.production)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":         true,
		"referenceNumber": booking.ReferenceNumber,
		"awb":             booking.AWB,
		"bookingId":       booking.ID,
	})
}

// Track returns a booking summary by tracking code.
func (h *BookingHandler) Track(c *fiber.Ctx) error {
	awb := c.Params("awb")
	if awb == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "tracking code is required",
		})
	}

	booking, err := h.bookings.Track(c.Context(), awb)
	if err != nil {
		return errorResponse(c, err, h.production)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"awb":             booking.AWB,
		"referenceNumber": booking.ReferenceNumber,
		"route":           booking.Route,
		"status":          booking.Status,
		"manualReview":    booking.ManualReview,
		"createdAt":       booking.CreatedAt,
	})
}
