package maintenanceController

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

// MaintenanceController owns the three maintenance mutation paths: logging a
// completed service, adding a recurrence rule, and filing a driver report.
// Each mutation runs under the store write lock and ends with a notification
// recompute, so readers never observe state and alerts out of step.
type MaintenanceController struct {
	vehicleRepo  repositories.VehicleRepository
	recordRepo   repositories.MaintenanceRecordRepository
	scheduleRepo repositories.MaintenanceScheduleRepository
	requestRepo  repositories.MaintenanceRequestRepository
	userRepo     repositories.UserRepository
	notification *services.NotificationService
	db           database.DB
	log          logger.Logger
}

type MaintenanceControllerInterface interface {
	LogService(ctx context.Context, req LogMaintenanceRequest) (*MaintenanceRecord, error)
	AddSchedule(ctx context.Context, req ScheduleMaintenanceRequest) (*MaintenanceSchedule, error)
	ReportIssue(ctx context.Context, req ReportIssueRequest) (*MaintenanceRequest, error)
	GetHistory(ctx context.Context, vehicleID uuid.UUID) ([]MaintenanceRecord, error)
	GetSchedules(ctx context.Context, vehicleID uuid.UUID) ([]MaintenanceSchedule, error)
	GetOpenRequests(ctx context.Context, vehicleID uuid.UUID) ([]OpenReport, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) MaintenanceControllerInterface {
	return &MaintenanceController{
		vehicleRepo:  repos.Vehicle,
		recordRepo:   repos.Record,
		scheduleRepo: repos.Schedule,
		requestRepo:  repos.Request,
		userRepo:     repos.User,
		notification: services.Notification,
		db:           db,
		log:          logger.New("maintenanceController"),
	}
}

// LogService records a completed service. When the logged odometer reading
// exceeds the vehicle's current mileage the vehicle is raised to match; a
// lower reading leaves it untouched.
func (c *MaintenanceController) LogService(
	ctx context.Context,
	req LogMaintenanceRequest,
) (*MaintenanceRecord, error) {
	log := c.log.Function("LogService")

	if !req.ServiceType.Valid() || req.ServiceType == ServiceDriverReport {
		return nil, errs.Validation("unknown service type %q", req.ServiceType)
	}
	if req.MileageAtService < 0 {
		return nil, errs.Validation("mileage must not be negative")
	}
	if req.Cost.IsNegative() {
		return nil, errs.Validation("cost must not be negative")
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	vehicle, err := c.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	record := &MaintenanceRecord{
		VehicleID:        req.VehicleID,
		ServiceType:      req.ServiceType,
		ServiceDate:      req.ServiceDate,
		Cost:             req.Cost,
		Workshop:         req.Workshop,
		Notes:            req.Notes,
		MileageAtService: req.MileageAtService,
	}

	if err := c.recordRepo.Create(ctx, record); err != nil {
		return nil, log.Err("failed to create maintenance record", err)
	}

	if req.MileageAtService > vehicle.CurrentMileage {
		vehicle.CurrentMileage = req.MileageAtService
		if err := c.vehicleRepo.Update(ctx, vehicle); err != nil {
			return nil, log.Err("failed to raise vehicle mileage", err)
		}
	}

	if _, err := c.notification.Recompute(ctx); err != nil {
		return nil, log.Err("failed to recompute notifications", err)
	}

	log.Info("Service logged",
		"vehicleID", req.VehicleID,
		"serviceType", req.ServiceType,
		"mileage", req.MileageAtService,
	)
	return record, nil
}

// AddSchedule creates a recurrence rule. At least one frequency axis must be
// set; both may be.
func (c *MaintenanceController) AddSchedule(
	ctx context.Context,
	req ScheduleMaintenanceRequest,
) (*MaintenanceSchedule, error) {
	log := c.log.Function("AddSchedule")

	if !req.ServiceType.Valid() || req.ServiceType == ServiceDriverReport {
		return nil, errs.Validation("unknown service type %q", req.ServiceType)
	}
	if req.FrequencyDays == nil && req.FrequencyKm == nil {
		return nil, errs.Validation("at least one of frequencyDays or frequencyKm is required")
	}
	if req.FrequencyDays != nil && *req.FrequencyDays <= 0 {
		return nil, errs.Validation("frequencyDays must be positive")
	}
	if req.FrequencyKm != nil && *req.FrequencyKm <= 0 {
		return nil, errs.Validation("frequencyKm must be positive")
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	if _, err := c.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	schedule := &MaintenanceSchedule{
		VehicleID:     req.VehicleID,
		ServiceType:   req.ServiceType,
		FrequencyDays: req.FrequencyDays,
		FrequencyKm:   req.FrequencyKm,
	}

	if err := c.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, log.Err("failed to create schedule", err)
	}

	if _, err := c.notification.Recompute(ctx); err != nil {
		return nil, log.Err("failed to recompute notifications", err)
	}

	log.Info("Schedule added", "vehicleID", req.VehicleID, "serviceType", req.ServiceType)
	return schedule, nil
}

// ReportIssue files a driver report. The recompute that follows surfaces it
// as an INFO notification dated at the report's creation time.
func (c *MaintenanceController) ReportIssue(
	ctx context.Context,
	req ReportIssueRequest,
) (*MaintenanceRequest, error) {
	log := c.log.Function("ReportIssue")

	req.Observations = strings.TrimSpace(req.Observations)
	if req.Observations == "" {
		return nil, errs.Validation("observations are required")
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	if _, err := c.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}
	if _, err := c.userRepo.GetByID(ctx, req.ReportedBy); err != nil {
		return nil, err
	}

	request := &MaintenanceRequest{
		VehicleID:    req.VehicleID,
		ReportedBy:   req.ReportedBy,
		Observations: req.Observations,
		Status:       RequestOpen,
		Photo:        req.Photo,
	}

	if err := c.requestRepo.Create(ctx, request); err != nil {
		return nil, log.Err("failed to create maintenance request", err)
	}

	if _, err := c.notification.Recompute(ctx); err != nil {
		return nil, log.Err("failed to recompute notifications", err)
	}

	log.Info("Issue reported", "vehicleID", req.VehicleID, "reportedBy", req.ReportedBy)
	return request, nil
}

func (c *MaintenanceController) GetHistory(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]MaintenanceRecord, error) {
	return c.recordRepo.GetByVehicle(ctx, vehicleID)
}

func (c *MaintenanceController) GetSchedules(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]MaintenanceSchedule, error) {
	return c.scheduleRepo.GetByVehicle(ctx, vehicleID)
}

func (c *MaintenanceController) GetOpenRequests(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]OpenReport, error) {
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
