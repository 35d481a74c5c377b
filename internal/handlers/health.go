package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftship/courier-backend/internal/storage"
)

// HealthHandler reports service and storage status.
type HealthHandler struct {
	store        storage.Store
	smsReady     bool
	storageLabel string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(store storage.Store, smsReady bool, storageLabel string) *HealthHandler {
	return &HealthHandler{store: store, smsReady: smsReady, storageLabel: storageLabel}
}

// Check probes the store with a cheap count and reports overall status.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	bookings, err := h.store.CountBookings(c.Context())
	if err != nil {
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"storage": h.storageLabel,
		"services": fiber.Map{
			"store": err == nil,
			"sms":   h.smsReady,
		},
		"bookings": bookings,
	})
}
