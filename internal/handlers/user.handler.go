package handlers

import (
	"fleetdesk/internal/app"
	authController "fleetdesk/internal/controllers/auth"
	userController "fleetdesk/internal/controllers/users"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	Handler
	authController authController.AuthControllerInterface
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		authController: app.Controllers.Auth,
		userController: app.Controllers.User,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users", h.middleware.RequireAuth(h.authController))
	users.Get("/", h.list)

	admin := users.Group("/", h.middleware.RequireRole(models.RoleAdmin))
	admin.Post("/", h.create)
	admin.Delete("/:id", h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	profiles, err := h.userController.GetAll(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"users": profiles})
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed create user request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.userController.Create(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	if err := h.userController.Delete(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
