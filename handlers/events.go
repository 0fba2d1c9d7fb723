package handlers

import (
	"shiphaus-platform/models"
	"shiphaus-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes wires the public reference-data reads and the admin
// event lifecycle.
func SetupEventRoutes(app *fiber.App, admin fiber.Router, events *services.EventService) {
	// 🔓 Reference data for the submit and chapter pages
	app.Get("/api/events", func(c *fiber.Ctx) error {
		list, err := events.List()
		if err != nil {
			return fail(c, err)
		}
		if list == nil {
			list = []models.Event{}
		}
		return c.JSON(list)
	})

	app.Get("/api/chapters", func(c *fiber.Ctx) error {
		chapters, err := events.Chapters()
		if err != nil {
			return fail(c, err)
		}
		if chapters == nil {
			chapters = []models.Chapter{}
		}
		return c.JSON(chapters)
	})

	// 🔒 Event lifecycle
	admin.Get("/events", func(c *fiber.Ctx) error {
		list, err := events.List()
		if err != nil {
			return fail(c, err)
		}
		if list == nil {
			list = []models.Event{}
		}
		return c.JSON(list)
	})

	admin.Post("/events", func(c *fiber.Ctx) error {
		var in services.CreateEventInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}
		event, err := events.Create(in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(event)
	})

	admin.Patch("/events/:id", func(c *fiber.Ctx) error {
		var in services.UpdateEventInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}
		event, err := events.Update(c.Params("id"), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(event)
	})

	admin.Delete("/events/:id", func(c *fiber.Ctx) error {
		if err := events.Delete(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}
