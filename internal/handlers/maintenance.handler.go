package handlers

import (
	"fleetdesk/internal/app"
	authController "fleetdesk/internal/controllers/auth"
	maintenanceController "fleetdesk/internal/controllers/maintenance"
	"fleetdesk/internal/handlers/middleware"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type MaintenanceHandler struct {
	Handler
	authController        authController.AuthControllerInterface
	maintenanceController maintenanceController.MaintenanceControllerInterface
}

func NewMaintenanceHandler(app app.App, router fiber.Router) *MaintenanceHandler {
	log := logger.New("handlers").File("maintenance_handler")
	return &MaintenanceHandler{
		authController:        app.Controllers.Auth,
		maintenanceController: app.Controllers.Maintenance,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MaintenanceHandler) Register() {
	maintenance := h.router.Group("/maintenance", h.middleware.RequireAuth(h.authController))

	managed := maintenance.Group("/", h.middleware.RequireRole(models.RoleAdmin, models.RoleFleetManager))
	managed.Post("/history", h.logService)
	managed.Post("/schedules", h.addSchedule)

	// Any authenticated user may file an issue report
	maintenance.Post("/requests", h.reportIssue)
}

func (h *MaintenanceHandler) logService(c *fiber.Ctx) error {
	log := h.log.Function("logService")

	var req models.LogMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed log service request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	record, err := h.maintenanceController.LogService(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"record": record})
}

func (h *MaintenanceHandler) addSchedule(c *fiber.Ctx) error {
	log := h.log.Function("addSchedule")

	var req models.ScheduleMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed schedule request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := h.maintenanceController.AddSchedule(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"schedule": schedule})
}

func (h *MaintenanceHandler) reportIssue(c *fiber.Ctx) error {
	log := h.log.Function("reportIssue")

	var req models.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed report request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// The reporter is always the authenticated user
	if user := middleware.GetUser(c); user != nil {
		req.ReportedBy = user.ID
	}

	request, err := h.maintenanceController.ReportIssue(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}
