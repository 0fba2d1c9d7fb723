package handlers

import (
	"errors"
	"log"

	"shiphaus-platform/services"
	"shiphaus-platform/store"

	"github.com/gofiber/fiber/v2"
)

// fail is the single place service failures become HTTP responses.
// Validation messages pass through verbatim; everything unexpected is
// logged server-side and collapses to a non-revealing 500.
func fail(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token."})
	case errors.Is(err, services.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests. Try again later."})
	default:
		log.Printf("❌ [%s %s] %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Try again?"})
	}
}

func rateLimited(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": msg})
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
