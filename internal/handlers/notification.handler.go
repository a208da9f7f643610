package handlers

import (
	"fleetdesk/internal/app"
	authController "fleetdesk/internal/controllers/auth"
	notificationController "fleetdesk/internal/controllers/notifications"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	authController         authController.AuthControllerInterface
	notificationController notificationController.NotificationControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	log := logger.New("handlers").File("notification_handler")
	return &NotificationHandler{
		authController:         app.Controllers.Auth,
		notificationController: app.Controllers.Notification,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	notifications := h.router.Group("/notifications", h.middleware.RequireAuth(h.authController))
	notifications.Get("/", h.list)
	notifications.Post("/refresh", h.refresh)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	notifications, err := h.notificationController.GetAll(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) refresh(c *fiber.Ctx) error {
	notifications, err := h.notificationController.Refresh(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}
