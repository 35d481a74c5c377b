package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/services"
)

// OTPHandler exposes OTP generation and verification endpoints.
type OTPHandler struct {
	otp        *services.OTPService
	log        *zap.Logger
	production bool
}

// NewOTPHandler creates an OTP handler.
func NewOTPHandler(otp *services.OTPService, production bool, log *zap.Logger) *OTPHandler {
	return &OTPHandler{otp: otp, log: log, production: production}
}

// Generate sends a fresh OTP to the submitted phone number.
func (h *OTPHandler) Generate(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	otp, err := h.otp.Generate(c.Context(), req.PhoneNumber)
	if err != nil {
		h.log.Warn("OTP generation rejected", zap.Error(err))
		return errorResponse(c, err, h.production)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"phoneNumber":      otp.Phone,
		"expiresInMinutes": int(h.otp.TTL().Minutes()),
		"maxAttempts":      otp.MaxAttempts,
	})
}

// Verify checks a submitted OTP code.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.PhoneNumber == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "phoneNumber and otp are required",
		})
	}

	if _, err := h.otp.Verify(c.Context(), req.PhoneNumber, req.OTP); err != nil {
		return errorResponse(c, err, h.production)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"verified": true,
	})
}
