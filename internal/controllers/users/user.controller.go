package userController

import (
	"context"
	"strings"

	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	log      logger.Logger
}

type UserControllerInterface interface {
	GetAll(ctx context.Context) ([]UserProfile, error)
	Create(ctx context.Context, req CreateUserRequest) (*UserProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func New(repos repositories.Repository, db database.DB) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		log:      logger.New("userController"),
	}
}

func (c *UserController) GetAll(ctx context.Context) ([]UserProfile, error) {
	users, err := c.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}

	return profiles, nil
}

func (c *UserController) Create(ctx context.Context, req CreateUserRequest) (*UserProfile, error) {
	log := c.log.Function("Create")

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	if req.Name == "" || req.Username == "" {
		return nil, errs.Validation("name and username are required")
	}
	if req.Password == "" {
		return nil, errs.Validation("password is required")
	}
	if !req.Role.Valid() {
		return nil, errs.Validation("unknown role %q", req.Role)
	}

	if existing, err := c.userRepo.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, errs.Constraint("username %q is already taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", err)
	}

	log.Info("User created", "userID", user.ID, "role", user.Role)

	profile := user.ToProfile()
	return &profile, nil
}

// Delete removes a user. The last remaining administrator cannot be removed,
// otherwise the fleet would be locked out of user management.
func (c *UserController) Delete(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("Delete")

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	if user.Role == RoleAdmin {
		admins, err := c.userRepo.CountByRole(ctx, RoleAdmin)
		if err != nil {
			return log.Err("failed to count administrators", err)
		}
		if admins <= 1 {
			return errs.Constraint("cannot delete the last administrator")
		}
	}

	if err := c.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("User deleted", "userID", id)
	return nil
}
