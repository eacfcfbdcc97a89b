package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// AuthHandler handles sign-in, registration and the session lifecycle.
type AuthHandler struct {
	wizards *service.WizardRegistry
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(wizards *service.WizardRegistry) *AuthHandler {
	return &AuthHandler{wizards: wizards}
}

// Register sets up auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Get(domain.PathLogin, h.Page("login"))
	router.Get(domain.PathRegister, h.Page("register"))

	auth := router.Group("/api/auth")
	auth.Get("/session", h.Session)
	auth.Post("/login", h.Login)
	auth.Post("/register", h.SignUp)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)
}

// Page renders the public login and register screens.
func (h *AuthHandler) Page(name string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":    name,
			"session": middleware.State(c),
		})
	}
}

// Session returns the client's current session.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"session": middleware.State(c)})
}

// Login signs the client in and sends it home.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body domain.Credentials
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	body.Email = strings.TrimSpace(body.Email)

	state, err := middleware.GetSession(c).SignIn(c.Context(), body)
	if err != nil {
		return fail(c, err)
	}
	slog.Info("client signed in", "client_id", middleware.ClientID(c))
	return c.JSON(fiber.Map{
		"session":  state,
		"redirect": service.Redirect{Path: domain.PathHome, Replace: true},
	})
}

// SignUp registers an account and signs the client in with it.
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var body struct {
		Name     string   `json:"name"`
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Roles    []string `json:"roles"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	reg := domain.Registration{Name: body.Name, Email: body.Email, Password: body.Password}
	for _, raw := range body.Roles {
		if role, ok := domain.NormalizeRole(strings.TrimSpace(raw)); ok {
			reg.Roles = append(reg.Roles, role)
		}
	}

	state, err := middleware.GetSession(c).Register(c.Context(), reg)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session":  state,
		"redirect": service.Redirect{Path: domain.PathHome, Replace: true},
	})
}

// Refresh verifies the stored token against the marketplace API.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	store := middleware.GetSession(c)
	if err := store.Bootstrap(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"session": store.Snapshot()})
}

// Logout clears the session and any open listing wizard.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := middleware.GetSession(c).Logout(c.Context()); err != nil {
		return err
	}
	h.wizards.Close(middleware.ClientID(c))
	return c.JSON(fiber.Map{
		"session":  service.SessionState{},
		"redirect": service.Redirect{Path: domain.PathHome},
	})
}
