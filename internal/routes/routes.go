package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftship/courier-backend/internal/handlers"
)

// SetupRoutes registers all API routes on the app.
func SetupRoutes(app *fiber.App, otp *handlers.OTPHandler, booking *handlers.BookingHandler, health *handlers.HealthHandler) {
	app.Get("/health", health.Check)

	api := app.Group("/api")

	otpGroup := api.Group("/otp")
	otpGroup.Post("/generate", otp.Generate)
	otpGroup.Post("/verify", otp.Verify)

	bookings := api.Group("/bookings")
	bookings.Post("/", booking.Create)
	bookings.Get("/track/:awb", booking.Track)
}
