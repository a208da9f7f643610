package controllers

import (
	"fleetdesk/config"
	"fleetdesk/internal/database"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/services"

	assistantController "fleetdesk/internal/controllers/assistant"
	authController "fleetdesk/internal/controllers/auth"
	maintenanceController "fleetdesk/internal/controllers/maintenance"
	notificationController "fleetdesk/internal/controllers/notifications"
	userController "fleetdesk/internal/controllers/users"
	vehicleController "fleetdesk/internal/controllers/vehicles"
)

type Controllers struct {
	Auth         authController.AuthControllerInterface
	User         userController.UserControllerInterface
	Vehicle      vehicleController.VehicleControllerInterface
	Maintenance  maintenanceController.MaintenanceControllerInterface
	Notification notificationController.NotificationControllerInterface
	Assistant    assistantController.AssistantControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:         authController.New(repos, config, db),
		User:         userController.New(repos, db),
		Vehicle:      vehicleController.New(repos, services, db),
		Maintenance:  maintenanceController.New(repos, services, db),
		Notification: notificationController.New(repos, services, db),
		Assistant:    assistantController.New(services),
	}
}
