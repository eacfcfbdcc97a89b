package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// LeaveWizard drops the client's open listing wizard when it loads any page
// other than the wizard's own. API calls and the event stream leave it open.
func LeaveWizard(wizards *service.WizardRegistry) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		if c.Method() == http.MethodGet && !strings.HasPrefix(path, "/api/") && !domain.IsWizardPath(path) {
			wizards.Close(ClientID(c))
		}
		return c.Next()
	}
}
