package handlers

import (
	"shiphaus-platform/middleware"
	"shiphaus-platform/models"
	"shiphaus-platform/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSubmissionRoutes wires the public intake form and the admin review
// queue.
func SetupSubmissionRoutes(app *fiber.App, admin fiber.Router, submissions *services.SubmissionService) {
	// 🔓 Web-form intake — lands in the pending queue
	app.Post("/api/submit", func(c *fiber.Ctx) error {
		var in services.SubmitInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}
		sub, err := submissions.Submit(in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "id": sub.ID})
	})

	// 🔒 Review queue
	admin.Get("/submissions", func(c *fiber.Ctx) error {
		pending, err := submissions.Pending()
		if err != nil {
			return fail(c, err)
		}
		if pending == nil {
			pending = []models.Submission{}
		}
		return c.JSON(pending)
	})

	admin.Patch("/submissions/:id", func(c *fiber.Ctx) error {
		var in struct {
			Action    string `json:"action"`
			ChapterID string `json:"chapterId"`
			EventID   string `json:"eventId"`
		}
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}

		switch in.Action {
		case "approve":
			reviewer := "admin"
			if user := middleware.SessionUser(c); user != nil {
				reviewer = user.Email
			}
			project, err := submissions.Approve(c.Params("id"), in.ChapterID, in.EventID, reviewer)
			if err != nil {
				return fail(c, err)
			}
			return c.JSON(project)
		case "reject":
			if err := submissions.Reject(c.Params("id")); err != nil {
				return fail(c, err)
			}
			return c.JSON(fiber.Map{"success": true})
		default:
			return badRequest(c, "Invalid action")
		}
	})
}
