package services

import (
	"fleetdesk/config"
	"fleetdesk/internal/database"
	"fleetdesk/internal/events"
	"fleetdesk/internal/repositories"
)

type Service struct {
	Notification *NotificationService
	Assistant    *AssistantService
	Scheduler    *SchedulerService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	repos := repositories.New(db)

	var broadcaster Broadcaster
	if eventBus != nil {
		broadcaster = eventBus
	}

	return Service{
		Notification: NewNotificationService(repos, broadcaster),
		Assistant:    NewAssistantService(config),
		Scheduler:    NewSchedulerService(),
	}, nil
}
