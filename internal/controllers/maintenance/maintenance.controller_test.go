package maintenanceController

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db         database.DB
	repos      repositories.Repository
	controller MaintenanceControllerInterface
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(gdb))

	db := database.NewWithGorm(gdb)
	repos := repositories.New(db)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	notificationService := services.NewNotificationService(repos, nil)
	notificationService.Now = func() time.Time { return now }

	service := services.Service{Notification: notificationService}

	return &testEnv{
		db:         db,
		repos:      repos,
		controller: New(repos, service, db),
		now:        now,
	}
}

func (env *testEnv) createVehicle(t *testing.T, mileage int) *Vehicle {
	t.Helper()

	vehicle := &Vehicle{
		Plate:          "TRK-001",
		VIN:            "4V4NC9EH7NN123456",
		Brand:          "Volvo",
		Model:          "VNL 860",
		Year:           2022,
		FuelType:       FuelDiesel,
		CurrentMileage: mileage,
	}
	require.NoError(t, env.repos.Vehicle.Create(context.Background(), vehicle))
	return vehicle
}

func (env *testEnv) createDriver(t *testing.T) *User {
	t.Helper()

	user := &User{
		Name:         "Carlos Driver",
		Username:     "carlos",
		PasswordHash: "x",
		Role:         RoleDriver,
	}
	require.NoError(t, env.repos.User.Create(context.Background(), user))
	return user
}

func TestLogServiceRaisesVehicleMileage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 150000)

	record, err := env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:        vehicle.ID,
		ServiceType:      ServiceOilChange,
		ServiceDate:      env.now.AddDate(0, 0, -1),
		Cost:             decimal.NewFromInt(200),
		Workshop:         "Central Garage",
		MileageAtService: 156000,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)

	updated, err := env.repos.Vehicle.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, 156000, updated.CurrentMileage)
}

func TestLogServiceNeverLowersMileage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 150000)

	_, err := env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:        vehicle.ID,
		ServiceType:      ServiceOilChange,
		ServiceDate:      env.now.AddDate(0, -1, 0),
		MileageAtService: 140000,
	})

	require.NoError(t, err)

	updated, err := env.repos.Vehicle.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, 150000, updated.CurrentMileage)
}

func TestLogServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 150000)

	_, err := env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:   vehicle.ID,
		ServiceType: "Flux Capacitor Swap",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:   vehicle.ID,
		ServiceType: ServiceDriverReport,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:   uuid.New(),
		ServiceType: ServiceOilChange,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLogServiceTriggersRecompute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 155000)

	_, err := env.controller.AddSchedule(ctx, ScheduleMaintenanceRequest{
		VehicleID:   vehicle.ID,
		ServiceType: ServiceOilChange,
		FrequencyKm: intPtr(15000),
	})
	require.NoError(t, err)

	// No oil change on file, anchor mileage 0: far overdue
	notifications, err := env.repos.Notification.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, SeverityDanger, notifications[0].Severity)

	// Logging the service at the current mileage clears the alert
	_, err = env.controller.LogService(ctx, LogMaintenanceRequest{
		VehicleID:        vehicle.ID,
		ServiceType:      ServiceOilChange,
		ServiceDate:      env.now.AddDate(0, 0, -1),
		MileageAtService: 155000,
	})
	require.NoError(t, err)

	notifications, err = env.repos.Notification.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestAddScheduleRequiresAnAxis(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 155000)

	_, err := env.controller.AddSchedule(ctx, ScheduleMaintenanceRequest{
		VehicleID:   vehicle.ID,
		ServiceType: ServiceOilChange,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.controller.AddSchedule(ctx, ScheduleMaintenanceRequest{
		VehicleID:     vehicle.ID,
		ServiceType:   ServiceOilChange,
		FrequencyDays: intPtr(-5),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	schedule, err := env.controller.AddSchedule(ctx, ScheduleMaintenanceRequest{
		VehicleID:     vehicle.ID,
		ServiceType:   ServiceOilChange,
		FrequencyDays: intPtr(90),
		FrequencyKm:   intPtr(15000),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, schedule.ID)
}

func TestReportIssueSurfacesInfoNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 155000)
	driver := env.createDriver(t)

	request, err := env.controller.ReportIssue(ctx, ReportIssueRequest{
		VehicleID:    vehicle.ID,
		ReportedBy:   driver.ID,
		Observations: "Strange noise when braking",
	})
	require.NoError(t, err)
	assert.Equal(t, RequestOpen, request.Status)

	notifications, err := env.repos.Notification.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, SeverityInfo, notifications[0].Severity)
	assert.Contains(t, notifications[0].Message, "Carlos Driver")
	assert.Contains(t, notifications[0].Message, "Strange noise when braking")
	assert.Contains(t, notifications[0].Message, "TRK-001")
}

func TestReportIssueValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 155000)
	driver := env.createDriver(t)

	_, err := env.controller.ReportIssue(ctx, ReportIssueRequest{
		VehicleID:    vehicle.ID,
		ReportedBy:   driver.ID,
		Observations: "   ",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.controller.ReportIssue(ctx, ReportIssueRequest{
		VehicleID:    uuid.New(),
		ReportedBy:   driver.ID,
		Observations: "Broken mirror",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetOpenRequestsIncludesReporterName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.createVehicle(t, 155000)
	driver := env.createDriver(t)

	_, err := env.controller.ReportIssue(ctx, ReportIssueRequest{
		VehicleID:    vehicle.ID,
		ReportedBy:   driver.ID,
		Observations: "Coolant leak",
	})
	require.NoError(t, err)

	reports, err := env.controller.GetOpenRequests(ctx, vehicle.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Carlos Driver", reports[0].ReporterName)
	assert.Equal(t, "Coolant leak", reports[0].Observations)
}

func intPtr(v int) *int { return &v }
