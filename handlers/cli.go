package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shiphaus-platform/middleware"
	"shiphaus-platform/services"
	"shiphaus-platform/utils"

	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// SetupCliRoutes wires the programmatic submission flow: token issuance
// (session), then upload + submit (bearer token).
func SetupCliRoutes(app *fiber.App, cli *services.CliService, blob *utils.BlobClient, sessions services.SessionResolver) {
	// 🔐 Token issuance — session required, rate limited per IP
	app.Post("/api/cli/token", middleware.WithSession(sessions), func(c *fiber.Ctx) error {
		user := middleware.SessionUser(c)
		if user == nil {
			return unauthorized(c, "Sign in required.")
		}

		var in struct {
			ChapterID string `json:"chapterId"`
			EventID   string `json:"eventId"`
		}
		// Body is optional; the ids only seed the prompt artifact.
		_ = c.BodyParser(&in)

		minted, err := cli.MintToken(*user, middleware.ClientIP(c), in.ChapterID, in.EventID)
		if err != nil {
			if errors.Is(err, services.ErrRateLimited) {
				return rateLimited(c, "Too many token requests. Try again later.")
			}
			return fail(c, err)
		}
		return c.JSON(minted)
	})

	// 🔑 Redemption — one project per token
	app.Post("/api/cli/submit", func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return unauthorized(c, "Missing token.")
		}
		token, err := cli.ValidateToken(raw)
		if err != nil {
			return fail(c, err)
		}

		var in services.CliSubmitInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid JSON")
		}

		project, url, err := cli.Submit(token, middleware.ClientIP(c), in)
		if err != nil {
			if errors.Is(err, services.ErrRateLimited) {
				return rateLimited(c, "Too many submissions. Try again later.")
			}
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "project": project, "url": url})
	})

	// 🖼️ Screenshot upload — bearer token, image only, ≤5MB
	app.Post("/api/cli/upload", func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return unauthorized(c, "Missing token.")
		}
		if _, err := cli.ValidateToken(raw); err != nil {
			return fail(c, err)
		}
		return handleUpload(c, blob, "projects")
	})
}

// SetupUploadRoutes wires the browser-session upload channel. Admin uploads
// land under events/, everyone else's under projects/.
func SetupUploadRoutes(app *fiber.App, blob *utils.BlobClient, sessions services.SessionResolver) {
	app.Post("/api/upload", middleware.WithSession(sessions), func(c *fiber.Ctx) error {
		user := middleware.SessionUser(c)
		if user == nil {
			return unauthorized(c, "Unauthorized")
		}
		prefix := "projects"
		if middleware.RoleFrom(c).Admin {
			prefix = "events"
		}
		return handleUpload(c, blob, prefix)
	})
}

func handleUpload(c *fiber.Ctx, blob *utils.BlobClient, prefix string) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file provided.")
	}
	if !allowedUploadTypes[file.Header.Get("Content-Type")] {
		return badRequest(c, "File must be JPEG, PNG, or WebP.")
	}
	if file.Size > maxUploadSize {
		return badRequest(c, "File must be under 5MB.")
	}

	key := fmt.Sprintf("%s/%d-%s", prefix, time.Now().UnixMilli(), file.Filename)
	url, err := blob.Upload(file, key)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
