package repositories

import (
	"fleetdesk/internal/database"
)

type Repository struct {
	User         UserRepository
	Vehicle      VehicleRepository
	Record       MaintenanceRecordRepository
	Schedule     MaintenanceScheduleRepository
	Request      MaintenanceRequestRepository
	Notification NotificationRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(db),
		Vehicle:      NewVehicleRepository(db),
		Record:       NewMaintenanceRecordRepository(db),
		Schedule:     NewMaintenanceScheduleRepository(db),
		Request:      NewMaintenanceRequestRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
