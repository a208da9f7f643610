package vehicleController

import (
	"context"
	"strings"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/services"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
)

type VehicleController struct {
	vehicleRepo  repositories.VehicleRepository
	recordRepo   repositories.MaintenanceRecordRepository
	scheduleRepo repositories.MaintenanceScheduleRepository
	requestRepo  repositories.MaintenanceRequestRepository
	userRepo     repositories.UserRepository
	notification *services.NotificationService
	db           database.DB
	log          logger.Logger
}

type VehicleControllerInterface interface {
	GetAll(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	Create(ctx context.Context, req CreateVehicleRequest) (*Vehicle, error)
	UpdateMileage(ctx context.Context, id uuid.UUID, req UpdateMileageRequest) (*Vehicle, error)
	Timeline(ctx context.Context, id uuid.UUID) ([]TimelineEvent, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) VehicleControllerInterface {
	return &VehicleController{
		vehicleRepo:  repos.Vehicle,
		recordRepo:   repos.Record,
		scheduleRepo: repos.Schedule,
		requestRepo:  repos.Request,
		userRepo:     repos.User,
		notification: services.Notification,
		db:           db,
		log:          logger.New("vehicleController"),
	}
}

func (c *VehicleController) GetAll(ctx context.Context) ([]Vehicle, error) {
	return c.vehicleRepo.GetAll(ctx)
}

func (c *VehicleController) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return c.vehicleRepo.GetByID(ctx, id)
}

func (c *VehicleController) Create(ctx context.Context, req CreateVehicleRequest) (*Vehicle, error) {
	log := c.log.Function("Create")

	req.Plate = strings.TrimSpace(req.Plate)
	if req.Plate == "" {
		return nil, errs.Validation("plate is required")
	}
	if !req.FuelType.Valid() {
		return nil, errs.Validation("unknown fuel type %q", req.FuelType)
	}
	if req.CurrentMileage < 0 {
		return nil, errs.Validation("mileage must not be negative")
	}

	vehicle := &Vehicle{
		Plate:          req.Plate,
		VIN:            strings.TrimSpace(req.VIN),
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		FuelType:       req.FuelType,
		CurrentMileage: req.CurrentMileage,
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	if err := c.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, log.Err("failed to create vehicle", err)
	}

	if _, err := c.notification.Recompute(ctx); err != nil {
		return nil, log.Err("failed to recompute notifications", err)
	}

	log.Info("Vehicle created", "vehicleID", vehicle.ID, "plate", vehicle.Plate)
	return vehicle, nil
}

// UpdateMileage advances the odometer reading. Mileage never decreases; a
// lower reading is rejected before any state change.
func (c *VehicleController) UpdateMileage(
	ctx context.Context,
	id uuid.UUID,
	req UpdateMileageRequest,
) (*Vehicle, error) {
	log := c.log.Function("UpdateMileage")

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	vehicle, err := c.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NewMileage < vehicle.CurrentMileage {
		return nil, errs.Validation(
			"mileage cannot decrease: current %d, requested %d",
			vehicle.CurrentMileage, req.NewMileage,
		)
	}

	vehicle.CurrentMileage = req.NewMileage
	if err := c.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, log.Err("failed to update vehicle mileage", err)
	}

	if _, err := c.notification.Recompute(ctx); err != nil {
		return nil, log.Err("failed to recompute notifications", err)
	}

	log.Info("Vehicle mileage updated", "vehicleID", id, "mileage", req.NewMileage)
	return vehicle, nil
}

// Timeline composes the vehicle's event feed on demand from the current
// collections. It never touches the notification set.
func (c *VehicleController) Timeline(ctx context.Context, id uuid.UUID) ([]TimelineEvent, error) {
	vehicle, err := c.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := c.recordRepo.GetByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	schedules, err := c.scheduleRepo.GetByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	reports, err := c.openReports(ctx, id)
	if err != nil {
		return nil, err
	}

	return services.ComposeTimeline(*vehicle, history, schedules, reports, c.notification.Now()), nil
}

func (c *VehicleController) openReports(ctx context.Context, vehicleID uuid.UUID) ([]OpenReport, error) {
	requests, err := c.requestRepo.GetOpenByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	reports := make([]OpenReport, 0, len(requests))
	for _, request := range requests {
		report := OpenReport{MaintenanceRequest: request, ReporterName: "driver"}
		if reporter, err := c.userRepo.GetByID(ctx, request.ReportedBy); err == nil {
			report.ReporterName = reporter.Name
		}
		reports = append(reports, report)
	}

	return reports, nil
}
