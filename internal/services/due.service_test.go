package services

import (
	"testing"
	"time"

	"fleetdesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVehicle(createdAt time.Time, mileage int) models.Vehicle {
	return models.Vehicle{
		BaseUUIDModel:  models.BaseUUIDModel{ID: uuid.New(), CreatedAt: createdAt},
		Plate:          "TRK-001",
		FuelType:       models.FuelDiesel,
		CurrentMileage: mileage,
	}
}

func intPtr(v int) *int { return &v }

func TestLatestServiceRecord(t *testing.T) {
	vehicleID := uuid.New()
	otherVehicle := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	history := []models.MaintenanceRecord{
		{
			VehicleID:   vehicleID,
			ServiceType: models.ServiceOilChange,
			ServiceDate: base,
		},
		{
			VehicleID:        vehicleID,
			ServiceType:      models.ServiceOilChange,
			ServiceDate:      base.AddDate(0, 6, 0),
			MileageAtService: 140000,
		},
		{
			VehicleID:   vehicleID,
			ServiceType: models.ServiceBrakeInspection,
			ServiceDate: base.AddDate(1, 0, 0),
		},
		{
			VehicleID:   otherVehicle,
			ServiceType: models.ServiceOilChange,
			ServiceDate: base.AddDate(2, 0, 0),
		},
	}

	latest := LatestServiceRecord(history, vehicleID, models.ServiceOilChange)
	require.NotNil(t, latest)
	assert.Equal(t, base.AddDate(0, 6, 0), latest.ServiceDate)
	assert.Equal(t, 140000, latest.MileageAtService)

	assert.Nil(t, LatestServiceRecord(history, vehicleID, models.ServiceTireRotation))
	assert.Nil(t, LatestServiceRecord(nil, vehicleID, models.ServiceOilChange))
}

func TestComputeDueStatus_TimeAxis(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-2, 0, 0), 155000)

	schedule := models.MaintenanceSchedule{
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceBrakeInspection,
		FrequencyDays: intPtr(180),
	}
	history := []models.MaintenanceRecord{
		{
			VehicleID:   vehicle.ID,
			ServiceType: models.ServiceBrakeInspection,
			ServiceDate: now.AddDate(0, 0, -170),
		},
	}

	status := ComputeDueStatus(vehicle, schedule, history, now)
	require.NotNil(t, status.DaysUntilDue)
	require.NotNil(t, status.DueDate)
	assert.InDelta(t, 10, *status.DaysUntilDue, 0.01)
	assert.Nil(t, status.KmUntilDue)
	assert.Nil(t, status.DueMileage)
}

func TestComputeDueStatus_TimeAxisFallsBackToVehicleCreation(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(0, 0, -400), 50000)

	schedule := models.MaintenanceSchedule{
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceAnnualInspection,
		FrequencyDays: intPtr(365),
	}

	status := ComputeDueStatus(vehicle, schedule, nil, now)
	require.NotNil(t, status.DaysUntilDue)
	assert.InDelta(t, -35, *status.DaysUntilDue, 0.01)
}

func TestComputeDueStatus_DistanceAxis(t *testing.T) {
	now := time.Now()
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 155000)

	schedule := models.MaintenanceSchedule{
		VehicleID:   vehicle.ID,
		ServiceType: models.ServiceOilChange,
		FrequencyKm: intPtr(15000),
	}
	history := []models.MaintenanceRecord{
		{
			VehicleID:        vehicle.ID,
			ServiceType:      models.ServiceOilChange,
			ServiceDate:      now.AddDate(0, -3, 0),
			MileageAtService: 140000,
		},
	}

	status := ComputeDueStatus(vehicle, schedule, history, now)
	require.NotNil(t, status.KmUntilDue)
	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 0, *status.KmUntilDue)
	assert.Equal(t, 155000, *status.DueMileage)
	assert.Nil(t, status.DaysUntilDue)
}

func TestComputeDueStatus_DistanceAxisFallsBackToZero(t *testing.T) {
	now := time.Now()
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 48500)

	schedule := models.MaintenanceSchedule{
		VehicleID:   vehicle.ID,
		ServiceType: models.ServiceOilChange,
		FrequencyKm: intPtr(10000),
	}

	status := ComputeDueStatus(vehicle, schedule, nil, now)
	require.NotNil(t, status.KmUntilDue)
	assert.Equal(t, -38500, *status.KmUntilDue)
	assert.Equal(t, 10000, *status.DueMileage)
}

func TestComputeDueStatus_BothAxes(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(0, 0, -30), 12000)

	schedule := models.MaintenanceSchedule{
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceTireRotation,
		FrequencyDays: intPtr(90),
		FrequencyKm:   intPtr(10000),
	}

	status := ComputeDueStatus(vehicle, schedule, nil, now)
	require.NotNil(t, status.DaysUntilDue)
	require.NotNil(t, status.KmUntilDue)
	assert.InDelta(t, 60, *status.DaysUntilDue, 0.01)
	assert.Equal(t, -2000, *status.KmUntilDue)
}
