package handlers

import (
	"shiphaus-platform/middleware"
	"shiphaus-platform/models"
	"shiphaus-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupProjectRoutes wires the public project listing, the owner/admin edit
// surface, and the admin project management routes. admin is the
// access-gated /api/admin group built in main.
func SetupProjectRoutes(app *fiber.App, admin fiber.Router, projects *services.ProjectService, sessions services.SessionResolver) {
	// 🔓 Public listing — ?chapter= XOR ?event= XOR everything
	app.Get("/api/projects", func(c *fiber.Ctx) error {
		list, err := projects.List(c.Query("chapter"), c.Query("event"))
		if err != nil {
			return fail(c, err)
		}
		if list == nil {
			list = []models.Project{}
		}
		return c.JSON(list)
	})

	// 🔐 Owner-or-admin mutations, session resolved per request
	owned := app.Group("/api/projects", middleware.WithSession(sessions))

	owned.Patch("/:id", func(c *fiber.Ctx) error {
		if middleware.SessionUser(c) == nil {
			return unauthorized(c, "Unauthorized")
		}
		var in services.UpdateInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}
		updated, err := projects.Update(c.Params("id"), middleware.RoleFrom(c), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(updated)
	})

	owned.Delete("/:id", func(c *fiber.Ctx) error {
		if middleware.SessionUser(c) == nil {
			return unauthorized(c, "Unauthorized")
		}
		if err := projects.Delete(c.Params("id"), middleware.RoleFrom(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	// 🔒 Admin management
	admin.Get("/projects", func(c *fiber.Ctx) error {
		list, err := projects.All()
		if err != nil {
			return fail(c, err)
		}
		if list == nil {
			list = []models.Project{}
		}
		return c.JSON(list)
	})

	admin.Delete("/projects/:id", func(c *fiber.Ctx) error {
		if err := projects.AdminDelete(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	admin.Patch("/projects/:id/feature", func(c *fiber.Ctx) error {
		updated, err := projects.ToggleFeatured(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(updated)
	})

	admin.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := projects.Stats()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(stats)
	})
}
