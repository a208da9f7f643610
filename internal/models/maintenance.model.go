package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceOilChange        ServiceType = "Oil Change"
	ServiceBrakeInspection  ServiceType = "Brake Inspection"
	ServiceTireRotation     ServiceType = "Tire Rotation"
	ServiceAnnualInspection ServiceType = "Annual Inspection"
	ServiceEngineTuneUp     ServiceType = "Engine Tune-Up"

	// ServiceDriverReport is not schedulable; it tags driver-submitted issue
	// reports in the timeline feed.
	ServiceDriverReport ServiceType = "Driver Reported Issue"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceOilChange, ServiceBrakeInspection, ServiceTireRotation,
		ServiceAnnualInspection, ServiceEngineTuneUp, ServiceDriverReport:
		return true
	default:
		return false
	}
}

// MaintenanceRecord is a completed service event. Immutable once created.
type MaintenanceRecord struct {
	BaseUUIDModel
	VehicleID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_maintenance_records_vehicle" json:"vehicleId"`
	ServiceType      ServiceType     `gorm:"type:text;not null;index:idx_maintenance_records_type"    json:"serviceType"`
	ServiceDate      time.Time       `gorm:"type:timestamp;not null"                                  json:"date"`
	Cost             decimal.Decimal `gorm:"type:decimal(10,2)"                                       json:"cost"`
	Workshop         string          `gorm:"type:text"                                                json:"workshop"`
	Notes            string          `gorm:"type:text"                                                json:"notes"`
	MileageAtService int             `gorm:"type:int;not null"                                        json:"mileageAtService"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (m *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if err := m.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if m.VehicleID == uuid.Nil || m.ServiceType == "" {
		return gorm.ErrInvalidValue
	}
	if m.ServiceDate.IsZero() {
		m.ServiceDate = time.Now()
	}
	return nil
}

// MaintenanceSchedule is a recurrence rule binding a vehicle to a service
// type. At least one of FrequencyDays/FrequencyKm must be set; multiple rules
// may exist per (vehicle, serviceType) and each is considered independently.
type MaintenanceSchedule struct {
	BaseUUIDModel
	VehicleID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_maintenance_schedules_vehicle" json:"vehicleId"`
	ServiceType   ServiceType `gorm:"type:text;not null"                                         json:"serviceType"`
	FrequencyDays *int        `gorm:"type:int"                                                   json:"frequencyDays,omitempty"`
	FrequencyKm   *int        `gorm:"type:int"                                                   json:"frequencyKm,omitempty"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (s *MaintenanceSchedule) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.FrequencyDays == nil && s.FrequencyKm == nil {
		return gorm.ErrInvalidValue
	}
	return nil
}

type RequestStatus string

const (
	RequestOpen RequestStatus = "OPEN"

	// RequestClosed exists in the model but no operation currently
	// transitions a request to it.
	RequestClosed RequestStatus = "CLOSED"
)

// MaintenanceRequest is a driver-submitted issue report. Immutable after
// creation. Photo is an opaque JSON document {"mimeType": ..., "data": ...}
// holding base64 image evidence.
type MaintenanceRequest struct {
	BaseUUIDModel
	VehicleID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_maintenance_requests_vehicle" json:"vehicleId"`
	ReportedBy   uuid.UUID      `gorm:"type:uuid;not null;index:idx_maintenance_requests_reporter" json:"reportedBy"`
	Observations string         `gorm:"type:text;not null"                                        json:"observations"`
	Status       RequestStatus  `gorm:"type:text;not null;default:OPEN"                           json:"status"`
	Photo        datatypes.JSON `gorm:"type:json"                                                 json:"photo,omitempty"`

	Vehicle  *Vehicle `gorm:"foreignKey:VehicleID"  json:"vehicle,omitempty"`
	Reporter *User    `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
}

func (r *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if err := r.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if r.Observations == "" {
		return gorm.ErrInvalidValue
	}
	if r.Status == "" {
		r.Status = RequestOpen
	}
	return nil
}

type LogMaintenanceRequest struct {
	VehicleID        uuid.UUID       `json:"vehicleId"`
	ServiceType      ServiceType     `json:"serviceType"`
	ServiceDate      time.Time       `json:"date"`
	Cost             decimal.Decimal `json:"cost"`
	Workshop         string          `json:"workshop"`
	Notes            string          `json:"notes"`
	MileageAtService int             `json:"mileageAtService"`
}

type ScheduleMaintenanceRequest struct {
	VehicleID     uuid.UUID   `json:"vehicleId"`
	ServiceType   ServiceType `json:"serviceType"`
	FrequencyDays *int        `json:"frequencyDays,omitempty"`
	FrequencyKm   *int        `json:"frequencyKm,omitempty"`
}

type ReportIssueRequest struct {
	VehicleID    uuid.UUID      `json:"vehicleId"`
	ReportedBy   uuid.UUID      `json:"reportedBy"`
	Observations string         `json:"observations"`
	Photo        datatypes.JSON `json:"photo,omitempty"`
}

// OpenReport is a MaintenanceRequest joined with its reporter's display name
// for timeline and list views.
type OpenReport struct {
	MaintenanceRequest
	ReporterName string `json:"reporterName"`
}
