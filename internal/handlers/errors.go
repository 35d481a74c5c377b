package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftship/courier-backend/internal/apperrors"
)

// errorResponse maps the pipeline error taxonomy to an HTTP status and a
// structured body. Server-side failures never leak internals in production.
func errorResponse(c *fiber.Ctx, err error, production bool) error {
	var mismatch *apperrors.MismatchError
	if errors.As(err, &mismatch) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":           false,
			"error":             mismatch.Error(),
			"remainingAttempts": mismatch.RemainingAttempts,
		})
	}

	var delivery *apperrors.DeliveryError
	if errors.As(err, &delivery) {
		return serverError(c, fiber.StatusBadGateway, "failed to send verification code", err, production)
	}

	var storageErr *apperrors.StorageError
	if errors.As(err, &storageErr) {
		return serverError(c, fiber.StatusInternalServerError, "internal server error", err, production)
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidPhoneNumber),
		errors.Is(err, apperrors.ErrOTPExpired),
		errors.Is(err, apperrors.ErrOTPAttemptsExhausted):
		return clientError(c, fiber.StatusBadRequest, err)
	case errors.Is(err, apperrors.ErrOTPNotFound),
		errors.Is(err, apperrors.ErrBookingNotFound):
		return clientError(c, fiber.StatusNotFound, err)
	case errors.Is(err, apperrors.ErrDocumentInvalid),
		errors.Is(err, apperrors.ErrIdentityMismatch):
		return clientError(c, fiber.StatusUnprocessableEntity, err)
	case errors.Is(err, apperrors.ErrAWBGenerationExhausted):
		return serverError(c, fiber.StatusInternalServerError, "could not allocate a tracking code, please retry", err, production)
	default:
		return serverError(c, fiber.StatusInternalServerError, "internal server error", err, production)
	}
}

func clientError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func serverError(c *fiber.Ctx, status int, publicMsg string, err error, production bool) error {
	msg := publicMsg
	if !production {
		msg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
