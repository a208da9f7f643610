package repositories

import (
	"context"

	"fleetdesk/internal/database"
	. "fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
)

type MaintenanceRecordRepository interface {
	GetAll(ctx context.Context) ([]MaintenanceRecord, error)
	GetByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]MaintenanceRecord, error)
	Create(ctx context.Context, record *MaintenanceRecord) error
}

type maintenanceRecordRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMaintenanceRecordRepository(db database.DB) MaintenanceRecordRepository {
	return &maintenanceRecordRepository{
		db:  db,
		log: logger.New("maintenanceRecordRepository"),
	}
}

func (r *maintenanceRecordRepository) GetAll(ctx context.Context) ([]MaintenanceRecord, error) {
	var records []MaintenanceRecord
	if err := r.db.SQLWithContext(ctx).Find(&records).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list maintenance records", err)
	}
	return records, nil
}

func (r *maintenanceRecordRepository) GetByVehicle(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]MaintenanceRecord, error) {
	var records []MaintenanceRecord
	err := r.db.SQLWithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, r.log.Function("GetByVehicle").
			Err("failed to list maintenance records", err, "vehicleID", vehicleID)
	}
	return records, nil
}

func (r *maintenanceRecordRepository) Create(ctx context.Context, record *MaintenanceRecord) error {
	if err := r.db.SQLWithContext(ctx).Create(record).Error; err != nil {
		return r.log.Function("Create").Err("failed to create maintenance record", err)
	}
	return nil
}

type MaintenanceScheduleRepository interface {
	GetAll(ctx context.Context) ([]MaintenanceSchedule, error)
	GetByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]MaintenanceSchedule, error)
	Create(ctx context.Context, schedule *MaintenanceSchedule) error
}

type maintenanceScheduleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMaintenanceScheduleRepository(db database.DB) MaintenanceScheduleRepository {
	return &maintenanceScheduleRepository{
		db:  db,
		log: logger.New("maintenanceScheduleRepository"),
	}
}

func (r *maintenanceScheduleRepository) GetAll(ctx context.Context) ([]MaintenanceSchedule, error) {
	var schedules []MaintenanceSchedule
	if err := r.db.SQLWithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list schedules", err)
	}
	return schedules, nil
}

func (r *maintenanceScheduleRepository) GetByVehicle(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]MaintenanceSchedule, error) {
	var schedules []MaintenanceSchedule
	err := r.db.SQLWithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Find(&schedules).Error
	if err != nil {
		return nil, r.log.Function("GetByVehicle").
			Err("failed to list schedules", err, "vehicleID", vehicleID)
	}
	return schedules, nil
}

func (r *maintenanceScheduleRepository) Create(ctx context.Context, schedule *MaintenanceSchedule) error {
	if err := r.db.SQLWithContext(ctx).Create(schedule).Error; err != nil {
		return r.log.Function("Create").Err("failed to create schedule", err)
	}
	return nil
}

type MaintenanceRequestRepository interface {
	GetAll(ctx context.Context) ([]MaintenanceRequest, error)
	GetOpen(ctx context.Context) ([]MaintenanceRequest, error)
	GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]MaintenanceRequest, error)
	Create(ctx context.Context, request *MaintenanceRequest) error
}

type maintenanceRequestRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMaintenanceRequestRepository(db database.DB) MaintenanceRequestRepository {
	return &maintenanceRequestRepository{
		db:  db,
		log: logger.New("maintenanceRequestRepository"),
	}
}

func (r *maintenanceRequestRepository) GetAll(ctx context.Context) ([]MaintenanceRequest, error) {
	var requests []MaintenanceRequest
	if err := r.db.SQLWithContext(ctx).Find(&requests).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list maintenance requests", err)
	}
	return requests, nil
}

func (r *maintenanceRequestRepository) GetOpen(ctx context.Context) ([]MaintenanceRequest, error) {
	var requests []MaintenanceRequest
	err := r.db.SQLWithContext(ctx).
		Where("status = ?", RequestOpen).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, r.log.Function("GetOpen").Err("failed to list open requests", err)
	}
	return requests, nil
}

func (r *maintenanceRequestRepository) GetOpenByVehicle(
	ctx context.Context,
	vehicleID uuid.UUID,
) ([]MaintenanceRequest, error) {
	var requests []MaintenanceRequest
	err := r.db.SQLWithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, RequestOpen).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, r.log.Function("GetOpenByVehicle").
			Err("failed to list open requests", err, "vehicleID", vehicleID)
	}
	return requests, nil
}

func (r *maintenanceRequestRepository) Create(ctx context.Context, request *MaintenanceRequest) error {
	if err := r.db.SQLWithContext(ctx).Create(request).Error; err != nil {
		return r.log.Function("Create").Err("failed to create maintenance request", err)
	}
	return nil
}
