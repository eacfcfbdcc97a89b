package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

const (
	streamTimeout   = 5 * time.Minute
	streamHeartbeat = 15 * time.Second
)

// EventsHandler delivers toasts and session changes to a client.
type EventsHandler struct {
	toasts *service.ToastCenter
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(toasts *service.ToastCenter) *EventsHandler {
	return &EventsHandler{toasts: toasts}
}

// Register sets up toast and event stream routes.
func (h *EventsHandler) Register(router fiber.Router) {
	router.Get("/api/toasts", h.ListToasts)
	router.Delete("/api/toasts/:id", h.DismissToast)
	router.Get("/api/events", h.StreamSSE)
}

// ListToasts returns the client's visible toasts.
func (h *EventsHandler) ListToasts(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"toasts": h.toasts.Active(middleware.ClientID(c))})
}

// DismissToast hides a toast before it expires.
func (h *EventsHandler) DismissToast(c fiber.Ctx) error {
	if !h.toasts.Dismiss(middleware.ClientID(c), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "toast not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StreamSSE streams the client's toasts and session changes via
// Server-Sent Events. The current session and visible toasts are sent first.
func (h *EventsHandler) StreamSSE(c fiber.Ctx) error {
	clientID := middleware.ClientID(c)
	store := middleware.GetSession(c)

	toasts, stopToasts := h.toasts.Subscribe(clientID)
	var sessions <-chan service.SessionState
	stopSessions := func() {}
	if store != nil {
		sessions, stopSessions = store.Subscribe()
	}
	initialSession := middleware.State(c)
	initialToasts := h.toasts.Active(clientID)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer stopToasts()
		defer stopSessions()

		if writeEvent(w, "session", initialSession) != nil {
			return
		}
		for _, t := range initialToasts {
			if writeEvent(w, "toast", t) != nil {
				return
			}
		}

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()
		timeout := time.After(streamTimeout)
		for {
			var err error
			select {
			case t, ok := <-toasts:
				if !ok {
					return
				}
				err = writeEvent(w, "toast", t)
			case st, ok := <-sessions:
				if !ok {
					return
				}
				err = writeEvent(w, "session", st)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				err = w.Flush()
			case <-timeout:
				slog.Debug("SSE timeout", "client_id", clientID)
				return
			}
			if err != nil {
				slog.Debug("SSE client gone", "client_id", clientID, "error", err)
				return
			}
		}
	})
}

func writeEvent(w *bufio.Writer, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return w.Flush()
}
