package database

import (
	"context"
	"fmt"
	"testing"

	"fleetdesk/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) DB {
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

	require.NoError(t, Migrate(gdb))

	return NewWithGorm(gdb)
}

func TestMigrateCreatesCollections(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{
		"users", "vehicles", "maintenance_records",
		"maintenance_schedules", "maintenance_requests", "notifications",
	} {
		assert.True(t, db.SQL.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SeedDemoData())

	var vehicles int64
	require.NoError(t, db.SQL.Model(&models.Vehicle{}).Count(&vehicles).Error)
	assert.EqualValues(t, 3, vehicles)

	// Second run must not duplicate anything
	require.NoError(t, db.SeedDemoData())
	require.NoError(t, db.SQL.Model(&models.Vehicle{}).Count(&vehicles).Error)
	assert.EqualValues(t, 3, vehicles)

	var users int64
	require.NoError(t, db.SQL.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 4, users)
}

func TestResetEmptiesEveryCollection(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.SeedDemoData())

	require.NoError(t, db.Reset(context.Background()))

	var count int64
	for _, model := range []any{
		&models.User{}, &models.Vehicle{}, &models.MaintenanceRecord{},
		&models.MaintenanceSchedule{}, &models.MaintenanceRequest{}, &models.Notification{},
	} {
		require.NoError(t, db.SQL.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestVehicleUUIDAssignedOnCreate(t *testing.T) {
	db := newTestDB(t)

	vehicle := models.Vehicle{
		Plate: "TST-001", VIN: "VINTEST", Brand: "Scania", Model: "R450",
		Year: 2024, FuelType: models.FuelDiesel, CurrentMileage: 100,
	}
	require.NoError(t, db.SQL.Create(&vehicle).Error)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", vehicle.ID.String())
}
