package repositories

import (
	"context"
	"errors"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	GetAll(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
}

type vehicleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewVehicleRepository(db database.DB) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: logger.New("vehicleRepository"),
	}
}

func (r *vehicleRepository) GetAll(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := r.db.SQLWithContext(ctx).Order("plate").Find(&vehicles).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list vehicles", err)
	}
	return vehicles, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	var vehicle Vehicle
	if err := r.db.SQLWithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("vehicle %s", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get vehicle", err, "id", id)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *Vehicle) error {
	if err := r.db.SQLWithContext(ctx).Create(vehicle).Error; err != nil {
		return r.log.Function("Create").Err("failed to create vehicle", err, "plate", vehicle.Plate)
	}
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *Vehicle) error {
	if err := r.db.SQLWithContext(ctx).Save(vehicle).Error; err != nil {
		return r.log.Function("Update").Err("failed to update vehicle", err, "id", vehicle.ID)
	}
	return nil
}
