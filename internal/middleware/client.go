package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ClientCookie names the cookie that identifies a browser.
const ClientCookie = "whx_client"

const localClientID = "client_id"

// ClientConfig controls the identity cookie.
type ClientConfig struct {
	Secure bool
	MaxAge time.Duration
}

// ClientIdentity issues the client cookie on first contact and exposes the
// client id to later handlers. Values that are not UUIDs are replaced.
func ClientIdentity(cfg ClientConfig) fiber.Handler {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 365 * 24 * time.Hour
	}
	return func(c fiber.Ctx) error {
		id := c.Cookies(ClientCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				Secure:   cfg.Secure,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localClientID, id)
		return c.Next()
	}
}

// ClientID returns the id set by ClientIdentity, or "".
func ClientID(c fiber.Ctx) string {
	id, _ := c.Locals(localClientID).(string)
	return id
}
