package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user:"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	CountByRole(ctx context.Context, role UserRole) (int64, error)
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SQLWithContext(ctx).Order("name").Find(&users).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list users", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found := r.getCacheByID(ctx, id, &user); found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user %s", id)
		}
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.SQLWithContext(ctx).
		First(&user, "lower(username) = ?", strings.ToLower(username)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user %q", username)
		}
		return nil, r.log.Function("GetByUsername").Err("failed to get user", err, "username", username)
	}
	return &user, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role UserRole) (int64, error) {
	var count int64
	err := r.db.SQLWithContext(ctx).Model(&User{}).Where("role = ?", role).Count(&count).Error
	if err != nil {
		return 0, r.log.Function("CountByRole").Err("failed to count users", err, "role", role)
	}
	return count, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return r.log.Function("Create").Err("failed to create user", err, "username", user.Username)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete user", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("user %s", id)
	}

	if err := r.clearUserCache(ctx, id); err != nil {
		log.Warn("failed to clear user cache after delete", "userID", id, "error", err)
	}

	return nil
}

func (r *userRepository) getCacheByID(ctx context.Context, id uuid.UUID, user *User) bool {
	if r.db.Cache.User == nil {
		return false
	}

	found, err := database.NewCacheBuilder(r.db.Cache.User, id).
		WithPrefix(USER_CACHE_PREFIX).
		WithContext(ctx).
		Get(user)
	if err != nil {
		r.log.Function("getCacheByID").Warn("failed to get user from cache", "userID", id, "error", err)
		return false
	}

	return found
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	if r.db.Cache.User == nil {
		return nil
	}

	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithPrefix(USER_CACHE_PREFIX).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, id uuid.UUID) error {
	if r.db.Cache.User == nil {
		return nil
	}

	return database.NewCacheBuilder(r.db.Cache.User, id).
		WithPrefix(USER_CACHE_PREFIX).
		WithContext(ctx).
		Delete()
}
