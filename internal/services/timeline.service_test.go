package services

import (
	"testing"
	"time"

	"fleetdesk/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEvent(events []models.TimelineEvent, kind models.TimelineKind, sourceID uuid.UUID) *models.TimelineEvent {
	for i := range events {
		if events[i].Kind == kind && events[i].SourceID == sourceID {
			return &events[i]
		}
	}
	return nil
}

func TestComposeTimeline_MergesAllKinds(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-2, 0, 0), 155000)

	record := models.MaintenanceRecord{
		BaseUUIDModel:    models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:        vehicle.ID,
		ServiceType:      models.ServiceOilChange,
		ServiceDate:      now.AddDate(0, -1, 0),
		Cost:             decimal.NewFromFloat(189.50),
		Workshop:         "Central Garage",
		Notes:            "Full synthetic",
		MileageAtService: 150000,
	}

	schedule := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceBrakeInspection,
		FrequencyDays: intPtr(180),
	}

	report := models.OpenReport{
		MaintenanceRequest: models.MaintenanceRequest{
			BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -2)},
			VehicleID:     vehicle.ID,
			Observations:  "Vibration at highway speed",
			Status:        models.RequestOpen,
		},
		ReporterName: "Carlos Driver",
	}

	events := ComposeTimeline(
		vehicle,
		[]models.MaintenanceRecord{record},
		[]models.MaintenanceSchedule{schedule},
		[]models.OpenReport{report},
		now,
	)

	require.Len(t, events, 3)

	completed := findEvent(events, models.TimelineCompleted, record.ID)
	require.NotNil(t, completed)
	assert.Equal(t, models.TimelineStatusCompleted, completed.Status)
	assert.Equal(t, "Central Garage", completed.Workshop)
	assert.Equal(t, 150000, completed.MileageAtService)
	require.NotNil(t, completed.Cost)
	assert.True(t, completed.Cost.Equal(decimal.NewFromFloat(189.50)))

	reported := findEvent(events, models.TimelineReported, report.ID)
	require.NotNil(t, reported)
	assert.Equal(t, models.TimelineStatusNeedsAttention, reported.Status)
	assert.Equal(t, "Carlos Driver", reported.ReporterName)
	assert.Equal(t, models.ServiceDriverReport, reported.ServiceType)

	scheduled := findEvent(events, models.TimelineScheduled, schedule.ID)
	require.NotNil(t, scheduled)
	// No brake history, so the anchor is vehicle creation: long past due
	assert.Equal(t, models.TimelineStatusOverdue, scheduled.Status)
	assert.Equal(t, vehicle.CreatedAt.AddDate(0, 0, 180), scheduled.Date)
}

func TestComposeTimeline_ScheduledStatusByDueDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 50000)

	schedule := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceAnnualInspection,
		FrequencyDays: intPtr(365),
	}
	history := []models.MaintenanceRecord{{
		VehicleID:   vehicle.ID,
		ServiceType: models.ServiceAnnualInspection,
		ServiceDate: now.AddDate(0, 0, -100),
	}}

	events := ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{schedule}, nil, now)

	require.Len(t, events, 2)
	scheduled := findEvent(events, models.TimelineScheduled, schedule.ID)
	require.NotNil(t, scheduled)
	assert.Equal(t, models.TimelineStatusUpcoming, scheduled.Status)

	// A due date exactly at now counts as overdue
	history[0].ServiceDate = now.AddDate(0, 0, -365)
	events = ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{schedule}, nil, now)
	scheduled = findEvent(events, models.TimelineScheduled, schedule.ID)
	require.NotNil(t, scheduled)
	assert.Equal(t, models.TimelineStatusOverdue, scheduled.Status)
}

func TestComposeTimeline_DistanceFallback(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 155000)

	kmOnly := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceOilChange,
		FrequencyKm:   intPtr(15000),
	}
	history := []models.MaintenanceRecord{{
		VehicleID:        vehicle.ID,
		ServiceType:      models.ServiceOilChange,
		ServiceDate:      now.AddDate(0, -3, 0),
		MileageAtService: 140000,
	}}

	events := ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{kmOnly}, nil, now)

	fallback := findEvent(events, models.TimelineScheduledKm, kmOnly.ID)
	require.NotNil(t, fallback)
	assert.Equal(t, models.TimelineStatusOverdue, fallback.Status)
	assert.Equal(t, now, fallback.Date)
	assert.Equal(t, 155000, fallback.DueMileage)
}

func TestComposeTimeline_DistanceFallbackNotEmittedBelowDueMileage(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 154999)

	kmOnly := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceOilChange,
		FrequencyKm:   intPtr(15000),
	}
	history := []models.MaintenanceRecord{{
		VehicleID:        vehicle.ID,
		ServiceType:      models.ServiceOilChange,
		ServiceDate:      now.AddDate(0, -3, 0),
		MileageAtService: 140000,
	}}

	events := ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{kmOnly}, nil, now)
	assert.Nil(t, findEvent(events, models.TimelineScheduledKm, kmOnly.ID))
}

func TestComposeTimeline_DateEntrySuppressesDistanceFallback(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-1, 0, 0), 155000)

	// One rule with both axes, mileage past due: only the dated projection
	// may appear for it
	both := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceOilChange,
		FrequencyDays: intPtr(90),
		FrequencyKm:   intPtr(15000),
	}
	history := []models.MaintenanceRecord{{
		VehicleID:        vehicle.ID,
		ServiceType:      models.ServiceOilChange,
		ServiceDate:      now.AddDate(0, 0, -100),
		MileageAtService: 139000,
	}}

	events := ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{both}, nil, now)

	assert.NotNil(t, findEvent(events, models.TimelineScheduled, both.ID))
	assert.Nil(t, findEvent(events, models.TimelineScheduledKm, both.ID))
}

func TestComposeTimeline_OrderedByDateDescending(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(now.AddDate(-2, 0, 0), 155000)

	history := []models.MaintenanceRecord{
		{
			BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
			VehicleID:     vehicle.ID,
			ServiceType:   models.ServiceOilChange,
			ServiceDate:   now.AddDate(0, -6, 0),
		},
		{
			BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
			VehicleID:     vehicle.ID,
			ServiceType:   models.ServiceTireRotation,
			ServiceDate:   now.AddDate(0, -1, 0),
		},
	}
	schedule := models.MaintenanceSchedule{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		VehicleID:     vehicle.ID,
		ServiceType:   models.ServiceOilChange,
		FrequencyDays: intPtr(365),
	}

	events := ComposeTimeline(vehicle, history, []models.MaintenanceSchedule{schedule}, nil, now)

	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Date.After(events[i-1].Date))
	}
	// Future projection sorts first
	assert.Equal(t, models.TimelineScheduled, events[0].Kind)
}

func TestComposeTimeline_EmptyInputs(t *testing.T) {
	vehicle := testVehicle(time.Now(), 0)
	assert.Empty(t, ComposeTimeline(vehicle, nil, nil, nil, time.Now()))
}
