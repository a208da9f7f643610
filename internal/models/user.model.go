package models

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin        UserRole = "ADMIN"
	RoleFleetManager UserRole = "FLEET_MANAGER"
	RoleDriver       UserRole = "DRIVER"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFleetManager, RoleDriver:
		return true
	default:
		return false
	}
}

type User struct {
	BaseUUIDModel
	Name         string   `gorm:"type:text;not null"        json:"name"`
	Username     string   `gorm:"type:text;not null;uniqueIndex" json:"username"`
	PasswordHash string   `gorm:"type:text;not null"        json:"-"`
	Role         UserRole `gorm:"type:text;not null;index"  json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if u.Username == "" || u.PasswordHash == "" {
		return gorm.ErrInvalidValue
	}
	if !u.Role.Valid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

// UserProfile is the public view of a user. The credential never leaves the
// store boundary.
type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}
