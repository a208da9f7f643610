package services

import (
	"time"

	"fleetdesk/internal/models"

	"github.com/google/uuid"
)

// DueStatus carries the next due point and the signed remaining quantity per
// axis of one schedule rule. Negative remainders mean overdue. An axis is nil
// when the rule does not set it.
type DueStatus struct {
	DueDate      *time.Time
	DaysUntilDue *float64
	DueMileage   *int
	KmUntilDue   *int
}

// LatestServiceRecord returns the most recent history record matching the
// (vehicle, serviceType) pair, by service date. Ties break arbitrarily.
func LatestServiceRecord(
	history []models.MaintenanceRecord,
	vehicleID uuid.UUID,
	serviceType models.ServiceType,
) *models.MaintenanceRecord {
	var latest *models.MaintenanceRecord
	for i := range history {
		record := &history[i]
		if record.VehicleID != vehicleID || record.ServiceType != serviceType {
			continue
		}
		if latest == nil || record.ServiceDate.After(latest.ServiceDate) {
			latest = record
		}
	}
	return latest
}

// ComputeDueStatus evaluates one schedule rule against a vehicle and its
// history at the given instant.
//
// Time axis: anchor is the latest matching service date, falling back to the
// vehicle's creation date when no history exists. Distance axis: anchor is
// the mileage recorded at the latest matching service, falling back to zero.
func ComputeDueStatus(
	vehicle models.Vehicle,
	schedule models.MaintenanceSchedule,
	history []models.MaintenanceRecord,
	now time.Time,
) DueStatus {
	latest := LatestServiceRecord(history, schedule.VehicleID, schedule.ServiceType)

	var status DueStatus

	if schedule.FrequencyDays != nil {
		anchor := vehicle.CreatedAt
		if latest != nil {
			anchor = latest.ServiceDate
		}
		dueDate := anchor.AddDate(0, 0, *schedule.FrequencyDays)
		days := dueDate.Sub(now).Hours() / 24
		status.DueDate = &dueDate
		status.DaysUntilDue = &days
	}

	if schedule.FrequencyKm != nil {
		anchorKm := 0
		if latest != nil {
			anchorKm = latest.MileageAtService
		}
		dueMileage := anchorKm + *schedule.FrequencyKm
		km := dueMileage - vehicle.CurrentMileage
		status.DueMileage = &dueMileage
		status.KmUntilDue = &km
	}

	return status
}
