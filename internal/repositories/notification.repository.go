package repositories

import (
	"context"

	"fleetdesk/internal/database"
	. "fleetdesk/internal/models"
	"fleetdesk/pkg/logger"
)

type NotificationRepository interface {
	GetAll(ctx context.Context) ([]Notification, error)
	// ReplaceAll discards the previous notification set and stores the new
	// one atomically. Derived state only: no incremental patching.
	ReplaceAll(ctx context.Context, notifications []Notification) error
}

type notificationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewNotificationRepository(db database.DB) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: logger.New("notificationRepository"),
	}
}

func (r *notificationRepository) GetAll(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := r.db.SQLWithContext(ctx).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, r.log.Function("GetAll").Err("failed to list notifications", err)
	}
	return notifications, nil
}

func (r *notificationRepository) ReplaceAll(ctx context.Context, notifications []Notification) error {
	log := r.log.Function("ReplaceAll")

	tx := r.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}
	defer database.TXDefer(tx, log)

	if err := tx.Exec("DELETE FROM notifications").Error; err != nil {
		return log.Err("failed to clear notifications", err)
	}

	if len(notifications) > 0 {
		if err := tx.Create(&notifications).Error; err != nil {
			return log.Err("failed to store notifications", err)
		}
	}

	return nil
}
