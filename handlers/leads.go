package handlers

import (
	"log"

	"shiphaus-platform/models"
	"shiphaus-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupLeadRoutes wires the chapter-lead application intake and the admin
// subscriber listing.
func SetupLeadRoutes(app *fiber.App, admin fiber.Router, leads *services.LeadService, cli *services.CliService) {
	app.Post("/api/lead", func(c *fiber.Ctx) error {
		var in services.LeadInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}
		lead, err := leads.Apply(in)
		if err != nil {
			return fail(c, err)
		}
		log.Printf("📬 New lead application: %s", lead.ID)
		return c.JSON(fiber.Map{"success": true, "id": lead.ID})
	})

	admin.Get("/subscribers", func(c *fiber.Ctx) error {
		subs, err := cli.Subscribers()
		if err != nil {
			return fail(c, err)
		}
		if subs == nil {
			subs = []models.Subscriber{}
		}
		return c.JSON(subs)
	})
}
