package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// RequireAuth admits clients holding a token.
func RequireAuth() fiber.Handler {
	return guard(service.RequireAuth)
}

// RequireRole admits signed-in clients holding one of roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return guard(func(s service.SessionState) service.Decision {
		return service.RequireRole(s, roles...)
	})
}

// guard evaluates check against the current snapshot. Page loads are
// redirected; API calls get a JSON error naming the redirect.
func guard(check func(service.SessionState) service.Decision) fiber.Handler {
	return func(c fiber.Ctx) error {
		d := check(State(c))
		if d.Allow {
			return c.Next()
		}
		if wantsPage(c) {
			return c.Redirect().Status(fiber.StatusFound).To(d.Redirect)
		}

		status, msg := fiber.StatusForbidden, "access denied"
		if d.Reason == service.DenyUnauthenticated {
			status, msg = fiber.StatusUnauthorized, "login required"
		}
		return c.Status(status).JSON(fiber.Map{
			"error":    msg,
			"redirect": d.Redirect,
		})
	}
}

func wantsPage(c fiber.Ctx) bool {
	return c.Method() == fiber.MethodGet && strings.Contains(c.Get(fiber.HeaderAccept), "text/html")
}
