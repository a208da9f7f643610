package jobs

import (
	"context"

	"fleetdesk/internal/database"
	"fleetdesk/internal/services"
	"fleetdesk/pkg/logger"
)

// NotificationRefreshJob regenerates the notification set on a schedule so
// day-based due windows roll over without waiting for a mutation.
type NotificationRefreshJob struct {
	notificationService *services.NotificationService
	db                  database.DB
	log                 logger.Logger
	schedule            services.Schedule
}

func NewNotificationRefreshJob(
	notificationService *services.NotificationService,
	db database.DB,
	schedule services.Schedule,
) *NotificationRefreshJob {
	log := logger.New("notificationRefreshJob")
	log.Info("Creating notification refresh job", "schedule", schedule)

	return &NotificationRefreshJob{
		notificationService: notificationService,
		db:                  db,
		log:                 log,
		schedule:            schedule,
	}
}

func (j *NotificationRefreshJob) Name() string {
	return "NotificationRefresh"
}

func (j *NotificationRefreshJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	j.db.WriteMu.Lock()
	defer j.db.WriteMu.Unlock()

	notifications, err := j.notificationService.Recompute(ctx)
	if err != nil {
		return log.Err("scheduled notification refresh failed", err)
	}

	log.Info("Scheduled notification refresh completed", "count", len(notifications))
	return nil
}

func (j *NotificationRefreshJob) Schedule() services.Schedule {
	return j.schedule
}
