package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

const localSession = "session"

// Session loads the client's auth store and injects it into the request.
// It must run after ClientIdentity.
func Session(sessions *service.SessionManager) fiber.Handler {
	return func(c fiber.Ctx) error {
		store, err := sessions.Get(c.Context(), ClientID(c))
		if err != nil {
			slog.Error("failed to load session", "client_id", ClientID(c), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load session",
			})
		}
		c.Locals(localSession, store)
		return c.Next()
	}
}

// GetSession extracts the auth store from Fiber locals.
func GetSession(c fiber.Ctx) *service.AuthStore {
	s, ok := c.Locals(localSession).(*service.AuthStore)
	if !ok {
		return nil
	}
	return s
}

// State returns the current session snapshot, empty when no store is loaded.
func State(c fiber.Ctx) service.SessionState {
	if s := GetSession(c); s != nil {
		return s.Snapshot()
	}
	return service.SessionState{}
}
