package notificationController

import (
	"context"

	"fleetdesk/internal/database"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/services"
	"fleetdesk/pkg/logger"
)

type NotificationController struct {
	notificationRepo repositories.NotificationRepository
	notification     *services.NotificationService
	db               database.DB
	log              logger.Logger
}

type NotificationControllerInterface interface {
	GetAll(ctx context.Context) ([]NotificationView, error)
	Refresh(ctx context.Context) ([]NotificationView, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) NotificationControllerInterface {
	return &NotificationController{
		notificationRepo: repos.Notification,
		notification:     services.Notification,
		db:               db,
		log:              logger.New("notificationController"),
	}
}

func (c *NotificationController) GetAll(ctx context.Context) ([]NotificationView, error) {
	notifications, err := c.notificationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewNotificationViews(notifications), nil
}

// Refresh forces a recompute outside the mutation paths, e.g. so a client
// can pick up day rollovers without waiting for the scheduled job.
func (c *NotificationController) Refresh(ctx context.Context) ([]NotificationView, error) {
	c.db.WriteMu.Lock()
	defer c.db.WriteMu.Unlock()

	notifications, err := c.notification.Recompute(ctx)
	if err != nil {
		return nil, err
	}
	return NewNotificationViews(notifications), nil
}
