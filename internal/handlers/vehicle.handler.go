package handlers

import (
	"fleetdesk/internal/app"
	authController "fleetdesk/internal/controllers/auth"
	maintenanceController "fleetdesk/internal/controllers/maintenance"
	vehicleController "fleetdesk/internal/controllers/vehicles"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	Handler
	authController        authController.AuthControllerInterface
	vehicleController     vehicleController.VehicleControllerInterface
	maintenanceController maintenanceController.MaintenanceControllerInterface
}

func NewVehicleHandler(app app.App, router fiber.Router) *VehicleHandler {
	log := logger.New("handlers").File("vehicle_handler")
	return &VehicleHandler{
		authController:        app.Controllers.Auth,
		vehicleController:     app.Controllers.Vehicle,
		maintenanceController: app.Controllers.Maintenance,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VehicleHandler) Register() {
	vehicles := h.router.Group("/vehicles", h.middleware.RequireAuth(h.authController))

	vehicles.Get("/", h.list)
	vehicles.Get("/:id", h.get)
	vehicles.Get("/:id/timeline", h.timeline)
	vehicles.Get("/:id/history", h.history)
	vehicles.Get("/:id/schedules", h.schedules)
	vehicles.Get("/:id/requests", h.openRequests)

	managed := vehicles.Group("/", h.middleware.RequireRole(models.RoleAdmin, models.RoleFleetManager))
	managed.Post("/", h.create)
	managed.Patch("/:id/mileage", h.updateMileage)
}

func (h *VehicleHandler) list(c *fiber.Ctx) error {
	vehicles, err := h.vehicleController.GetAll(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"vehicles": vehicles})
}

func (h *VehicleHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.vehicleController.GetByID(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"vehicle": vehicle})
}

func (h *VehicleHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req models.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed create vehicle request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	vehicle, err := h.vehicleController.Create(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vehicle": vehicle})
}

func (h *VehicleHandler) updateMileage(c *fiber.Ctx) error {
	log := h.log.Function("updateMileage")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req models.UpdateMileageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed mileage update request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	vehicle, err := h.vehicleController.UpdateMileage(c.UserContext(), id, req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"vehicle": vehicle})
}

func (h *VehicleHandler) timeline(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	events, err := h.vehicleController.Timeline(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"timeline": events})
}

func (h *VehicleHandler) history(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	records, err := h.maintenanceController.GetHistory(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"history": records})
}

func (h *VehicleHandler) schedules(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	schedules, err := h.maintenanceController.GetSchedules(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"schedules": schedules})
}

func (h *VehicleHandler) openRequests(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	requests, err := h.maintenanceController.GetOpenRequests(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"requests": requests})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id parameter")
	}
	return id, nil
}
