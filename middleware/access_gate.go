package middleware

import (
	"log"
	"strings"

	"shiphaus-platform/services"

	"github.com/gofiber/fiber/v2"
)

// Session cookie names set by the identity provider.
const (
	sessionCookieSecure = "__Secure-authjs.session-token"
	sessionCookie       = "authjs.session-token"
)

const (
	localSessionUser = "session_user"
	localRole        = "role"
)

// AccessGate guards admin-prefixed paths. A request passes only with a
// recognized session cookie that resolves to an admin; every other outcome
// (no cookie, non-admin, provider error) is denied. Resolution failures are
// treated as unauthorized — fail closed, never open.
func AccessGate(sessions services.SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAPI := strings.HasPrefix(c.Path(), "/api/")

		if c.Cookies(sessionCookieSecure) == "" && c.Cookies(sessionCookie) == "" {
			return denyAdmin(c, isAPI, "/login")
		}

		user, err := sessions.ResolveSession(c.Get("Cookie"))
		if err != nil {
			log.Printf("❌ [ACCESS_GATE] session resolution failed for %s: %v", c.Path(), err)
			return denyAdmin(c, isAPI, "/login")
		}
		if user == nil {
			return denyAdmin(c, isAPI, "/login")
		}
		if !user.IsAdmin {
			log.Printf("🚫 [ACCESS_GATE] non-admin %s denied on %s", user.Email, c.Path())
			return denyAdmin(c, isAPI, "/")
		}

		c.Locals(localSessionUser, user)
		c.Locals(localRole, services.Role{Admin: true, Email: user.Email})
		return c.Next()
	}
}

func denyAdmin(c *fiber.Ctx, isAPI bool, redirectTo string) error {
	if isAPI {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.Redirect(redirectTo, fiber.StatusFound)
}

// WithSession resolves the session when one is present and attaches the
// typed identity; it never denies. Handlers behind it decide what an
// anonymous caller may do. Resolution failures leave the request anonymous.
func WithSession(sessions services.SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localRole, services.Anonymous)

		if c.Cookies(sessionCookieSecure) == "" && c.Cookies(sessionCookie) == "" {
			return c.Next()
		}
		user, err := sessions.ResolveSession(c.Get("Cookie"))
		if err != nil {
			log.Printf("⚠️  [SESSION] resolution failed for %s: %v", c.Path(), err)
			return c.Next()
		}
		if user != nil {
			c.Locals(localSessionUser, user)
			c.Locals(localRole, services.Role{Admin: user.IsAdmin, Email: user.Email})
		}
		return c.Next()
	}
}

// SessionUser returns the resolved identity, or nil for anonymous requests.
func SessionUser(c *fiber.Ctx) *services.SessionUser {
	user, _ := c.Locals(localSessionUser).(*services.SessionUser)
	return user
}

// RoleFrom returns the typed authorization capability for this request.
func RoleFrom(c *fiber.Ctx) services.Role {
	role, ok := c.Locals(localRole).(services.Role)
	if !ok {
		return services.Anonymous
	}
	return role
}

// ClientIP extracts the originating address the way the rate limiter keys
// it: first X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func ClientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return real
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
