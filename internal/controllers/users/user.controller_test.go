package userController

import (
	"context"
	"fmt"
	"testing"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestController(t *testing.T) (UserControllerInterface, repositories.Repository) {
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
	return New(repos, db), repos
}

func TestCreateUserHashesPassword(t *testing.T) {
	controller, repos := newTestController(t)
	ctx := context.Background()

	profile, err := controller.Create(ctx, CreateUserRequest{
		Name:     "Bernard Manager",
		Username: "Manager",
		Password: "password",
		Role:     RoleFleetManager,
	})

	require.NoError(t, err)
	assert.Equal(t, "manager", profile.Username, "usernames are normalized to lowercase")

	stored, err := repos.User.GetByUsername(ctx, "manager")
	require.NoError(t, err)
	assert.NotEqual(t, "password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password")))
}

func TestCreateUserValidation(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, CreateUserRequest{
		Username: "nobody",
		Password: "x",
		Role:     RoleDriver,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = controller.Create(ctx, CreateUserRequest{
		Name:     "No Role",
		Username: "norole",
		Password: "x",
		Role:     "SUPERUSER",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = controller.Create(ctx, CreateUserRequest{
		Name:     "No Password",
		Username: "nopass",
		Role:     RoleDriver,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, CreateUserRequest{
		Name:     "First",
		Username: "shared",
		Password: "x",
		Role:     RoleDriver,
	})
	require.NoError(t, err)

	_, err = controller.Create(ctx, CreateUserRequest{
		Name:     "Second",
		Username: "SHARED",
		Password: "x",
		Role:     RoleDriver,
	})
	assert.ErrorIs(t, err, errs.ErrConstraint)
}

func TestDeleteLastAdminRejected(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	admin, err := controller.Create(ctx, CreateUserRequest{
		Name:     "Alicia Admin",
		Username: "admin",
		Password: "x",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)

	adminID := uuid.MustParse(admin.ID)
	err = controller.Delete(ctx, adminID)
	assert.ErrorIs(t, err, errs.ErrConstraint)

	// With a second admin on file the first may go
	_, err = controller.Create(ctx, CreateUserRequest{
		Name:     "Backup Admin",
		Username: "admin2",
		Password: "x",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)

	require.NoError(t, controller.Delete(ctx, adminID))

	profiles, err := controller.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "admin2", profiles[0].Username)
}

func TestDeleteUnknownUser(t *testing.T) {
	controller, _ := newTestController(t)

	err := controller.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetAllStripsCredentials(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, CreateUserRequest{
		Name:     "Carlos Driver",
		Username: "carlos",
		Password: "secret",
		Role:     RoleDriver,
	})
	require.NoError(t, err)

	profiles, err := controller.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Carlos Driver", profiles[0].Name)
	assert.Equal(t, RoleDriver, profiles[0].Role)
}
