package handlers

import (
	"fleetdesk/internal/app"
	authController "fleetdesk/internal/controllers/auth"
	"fleetdesk/internal/handlers/middleware"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)

	protected := auth.Group("/", h.middleware.RequireAuth(h.authController))
	protected.Post("/logout", h.logout)
	protected.Get("/me", h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed login request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.authController.Logout(c.UserContext(), middleware.GetToken(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}
