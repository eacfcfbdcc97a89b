package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// NavigationAudit records every request with its outcome.
func NavigationAudit(store port.NavigationLogStore) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		method := strings.Clone(c.Method())
		path := strings.Clone(c.Path())
		ip := strings.Clone(c.IP())
		userAgent := strings.Clone(c.Get(fiber.HeaderUserAgent))
		clientID := ClientID(c)

		err := c.Next()

		userID := ""
		if st := State(c); st.User != nil {
			userID = st.User.ID.String()
		}

		status := c.Response().StatusCode()
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status = fe.Code
		case err != nil:
			status = fiber.StatusInternalServerError
		}

		details := map[string]interface{}{
			"ip":          ip,
			"user_agent":  userAgent,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if loc := string(c.Response().Header.Peek(fiber.HeaderLocation)); loc != "" {
			details["location"] = loc
		}
		detailsJSON, _ := json.Marshal(details)

		entry := domain.NavigationLog{
			ClientID: clientID,
			UserID:   userID,
			Method:   method,
			Path:     path,
			Status:   status,
			Outcome:  outcomeFor(status),
			Details:  string(detailsJSON),
		}

		// All values are captured, safe to use in goroutine
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if writeErr := store.WriteNavigation(ctx, entry); writeErr != nil {
				slog.Error("failed to write navigation log", "error", writeErr)
			}
		}()

		return err
	}
}

func outcomeFor(status int) string {
	switch {
	case status >= 400:
		return domain.NavigationError
	case status >= 300:
		return domain.NavigationRedirected
	}
	return domain.NavigationAllowed
}
