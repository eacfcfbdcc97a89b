package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/port"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// MsgUnexpected is shown when a request fails in a way the client cannot fix.
const MsgUnexpected = "Something went wrong."

// ErrorHandler renders errors that escape handlers, including recovered
// panics, as the client's error screen.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	slog.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":  MsgUnexpected,
		"reload": true,
	})
}

// statusFor maps a normalized API failure onto the response status.
func statusFor(apiErr *port.APIError) int {
	switch apiErr.Kind {
	case port.KindValidation:
		return fiber.StatusBadRequest
	case port.KindUnauthorized:
		return fiber.StatusUnauthorized
	case port.KindForbidden:
		return fiber.StatusForbidden
	case port.KindNotFound:
		return fiber.StatusNotFound
	case port.KindHTTP:
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
	}
	return fiber.StatusBadGateway
}

// fail writes err as a JSON error. Marketplace and validation failures keep
// their message; anything else goes to ErrorHandler.
func fail(c fiber.Ctx, err error) error {
	return failWith(c, err, nil)
}

// failWith is fail plus the navigation the failure triggered, if any.
func failWith(c fiber.Ctx, err error, nav *service.PendingNavigator) error {
	body := fiber.Map{}
	status := fiber.StatusInternalServerError

	if apiErr, ok := port.AsAPIError(err); ok {
		status = statusFor(apiErr)
		body["error"] = apiErr.Message
		if apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
	} else {
		switch {
		case errors.Is(err, port.ErrNoWizard):
			status = fiber.StatusNotFound
			body["error"] = err.Error()
		case errors.Is(err, port.ErrMissingClientID):
			status = fiber.StatusBadRequest
			body["error"] = err.Error()
		default:
			return err
		}
	}

	withRedirect(body, nav)
	return c.Status(status).JSON(body)
}

// withRedirect moves a pending navigation into body.
func withRedirect(body fiber.Map, nav *service.PendingNavigator) {
	if nav == nil {
		return
	}
	if r, ok := nav.Take(); ok {
		body["redirect"] = r
	}
}
