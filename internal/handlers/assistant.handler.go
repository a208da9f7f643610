package handlers

import (
	"fleetdesk/internal/app"
	assistantController "fleetdesk/internal/controllers/assistant"
	authController "fleetdesk/internal/controllers/auth"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	Handler
	authController      authController.AuthControllerInterface
	assistantController assistantController.AssistantControllerInterface
}

func NewAssistantHandler(app app.App, router fiber.Router) *AssistantHandler {
	log := logger.New("handlers").File("assistant_handler")
	return &AssistantHandler{
		authController:      app.Controllers.Auth,
		assistantController: app.Controllers.Assistant,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AssistantHandler) Register() {
	assistant := h.router.Group("/assistant", h.middleware.RequireAuth(h.authController))
	assistant.Post("/", h.ask)
}

func (h *AssistantHandler) ask(c *fiber.Ctx) error {
	log := h.log.Function("ask")

	var req assistantController.AskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed assistant request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.assistantController.Ask(c.UserContext(), req.Question)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(response)
}
