package database

import (
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData loads the demonstration fleet when the store is empty. The
// store is ephemeral, so the seed runs on every start when enabled.
func (s *DB) SeedDemoData() error {
	log := logger.New("database").Function("SeedDemoData")

	var count int64
	if err := s.SQL.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
		return log.Err("failed to count vehicles", err)
	}
	if count > 0 {
		log.Info("Store already populated, skipping demo seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash demo password", err)
	}

	users := []models.User{
		{Name: "Alicia Admin", Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin},
		{Name: "Bernard Manager", Username: "manager", PasswordHash: string(hash), Role: models.RoleFleetManager},
		{Name: "Carlos Driver", Username: "carlos", PasswordHash: string(hash), Role: models.RoleDriver},
		{Name: "Diana Driver", Username: "diana", PasswordHash: string(hash), Role: models.RoleDriver},
	}
	if err := s.SQL.Create(&users).Error; err != nil {
		return log.Err("failed to seed users", err)
	}

	vehicles := []models.Vehicle{
		{
			Plate: "TRK-001", Brand: "Volvo", Model: "VNL 860", Year: 2022, VIN: "VIN001",
			CurrentMileage: 155000, FuelType: models.FuelDiesel,
			BaseUUIDModel: models.BaseUUIDModel{CreatedAt: time.Date(2022, 1, 10, 10, 0, 0, 0, time.UTC)},
		},
		{
			Plate: "VAN-002", Brand: "Ford", Model: "Transit", Year: 2023, VIN: "VIN002",
			CurrentMileage: 48500, FuelType: models.FuelGasoline,
			BaseUUIDModel: models.BaseUUIDModel{CreatedAt: time.Date(2023, 3, 15, 10, 0, 0, 0, time.UTC)},
		},
		{
			Plate: "TRK-003", Brand: "Kenworth", Model: "T680", Year: 2021, VIN: "VIN003",
			CurrentMileage: 210000, FuelType: models.FuelDiesel,
			BaseUUIDModel: models.BaseUUIDModel{CreatedAt: time.Date(2021, 8, 20, 10, 0, 0, 0, time.UTC)},
		},
	}
	if err := s.SQL.Create(&vehicles).Error; err != nil {
		return log.Err("failed to seed vehicles", err)
	}

	history := []models.MaintenanceRecord{
		{
			VehicleID: vehicles[0].ID, ServiceType: models.ServiceOilChange,
			ServiceDate: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
			Cost:        decimal.NewFromInt(350), Workshop: "Central Garage",
			Notes: "Oil and filter change.", MileageAtService: 140000,
		},
		{
			VehicleID: vehicles[0].ID, ServiceType: models.ServiceBrakeInspection,
			ServiceDate: time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC),
			Cost:        decimal.NewFromInt(200), Workshop: "SafeBrakes",
			Notes: "Pads at 50%.", MileageAtService: 125000,
		},
		{
			VehicleID: vehicles[1].ID, ServiceType: models.ServiceOilChange,
			ServiceDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			Cost:        decimal.NewFromInt(150), Workshop: "QuickService",
			Notes: "Synthetic oil.", MileageAtService: 40100,
		},
	}
	if err := s.SQL.Create(&history).Error; err != nil {
		return log.Err("failed to seed maintenance history", err)
	}

	days180, days365 := 180, 365
	km10000, km15000, km20000 := 10000, 15000, 20000
	schedules := []models.MaintenanceSchedule{
		{VehicleID: vehicles[0].ID, ServiceType: models.ServiceOilChange, FrequencyKm: &km15000},
		{VehicleID: vehicles[0].ID, ServiceType: models.ServiceBrakeInspection, FrequencyDays: &days180},
		{VehicleID: vehicles[1].ID, ServiceType: models.ServiceOilChange, FrequencyKm: &km10000},
		{VehicleID: vehicles[1].ID, ServiceType: models.ServiceAnnualInspection, FrequencyDays: &days365},
		{VehicleID: vehicles[2].ID, ServiceType: models.ServiceOilChange, FrequencyKm: &km20000},
	}
	if err := s.SQL.Create(&schedules).Error; err != nil {
		return log.Err("failed to seed maintenance schedules", err)
	}

	log.Info("Demo fleet seeded",
		"users", len(users),
		"vehicles", len(vehicles),
		"history", len(history),
		"schedules", len(schedules),
	)
	return nil
}
