package models

import (
	"gorm.io/gorm"
)

type FuelType string

const (
	FuelDiesel   FuelType = "Diesel"
	FuelGasoline FuelType = "Gasoline"
	FuelElectric FuelType = "Electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelDiesel, FuelGasoline, FuelElectric:
		return true
	default:
		return false
	}
}

// Vehicle is an owned fleet vehicle. CurrentMileage is monotonically
// non-decreasing; the controllers enforce that at the mutation boundary.
// CreatedAt doubles as the fallback service anchor when a schedule has no
// matching history.
type Vehicle struct {
	BaseUUIDModel
	Plate          string   `gorm:"type:text;not null;index" json:"plate"`
	VIN            string   `gorm:"column:vin;type:text;not null" json:"vin"`
	Brand          string   `gorm:"type:text;not null"       json:"brand"`
	Model          string   `gorm:"type:text;not null"       json:"model"`
	Year           int      `gorm:"type:int;not null"        json:"year"`
	FuelType       FuelType `gorm:"type:text;not null"       json:"fuelType"`
	CurrentMileage int      `gorm:"type:int;not null"        json:"currentMileage"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if err := v.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if v.Plate == "" || !v.FuelType.Valid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

type CreateVehicleRequest struct {
	Plate          string   `json:"plate"`
	VIN            string   `json:"vin"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	FuelType       FuelType `json:"fuelType"`
	CurrentMileage int      `json:"currentMileage"`
}

type UpdateMileageRequest struct {
	NewMileage int `json:"newMileage"`
}
