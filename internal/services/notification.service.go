package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/pkg/logger"

	"github.com/google/uuid"
)

// Lead-time thresholds: a WARNING is raised inside this window before the due
// point, DANGER at or past it.
const (
	DueSoonDays = 14
	DueSoonKm   = 2000
)

// Broadcaster pushes a refresh signal to connected clients after a recompute.
type Broadcaster interface {
	NotificationsRefreshed(count int)
}

// NotificationService owns the derivation of the notification set. The full
// set is regenerated from scratch on every recompute; nothing is patched
// incrementally and prior read-state is discarded.
type NotificationService struct {
	repos  repositories.Repository
	events Broadcaster
	log    logger.Logger

	// Now is injectable for deterministic due calculations in tests.
	Now func() time.Time
}

func NewNotificationService(repos repositories.Repository, events Broadcaster) *NotificationService {
	return &NotificationService{
		repos:  repos,
		events: events,
		log:    logger.New("notificationService"),
		Now:    time.Now,
	}
}

// Snapshot loads a consistent projection of every authoritative collection.
// Callers that mutate must hold the store write lock around load + recompute.
func (s *NotificationService) Snapshot(ctx context.Context) (models.FleetSnapshot, error) {
	log := s.log.Function("Snapshot")

	var snap models.FleetSnapshot
	var err error

	if snap.Vehicles, err = s.repos.Vehicle.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load vehicles", err)
	}
	if snap.History, err = s.repos.Record.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load maintenance history", err)
	}
	if snap.Schedules, err = s.repos.Schedule.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load schedules", err)
	}
	if snap.Requests, err = s.repos.Request.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load maintenance requests", err)
	}
	if snap.Notifications, err = s.repos.Notification.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load notifications", err)
	}
	if snap.Users, err = s.repos.User.GetAll(ctx); err != nil {
		return snap, log.Err("failed to load users", err)
	}

	return snap, nil
}

// Recompute derives the complete notification set from current state and
// replaces the stored collection wholesale.
func (s *NotificationService) Recompute(ctx context.Context) ([]models.Notification, error) {
	log := s.log.Function("Recompute")

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	notifications := GenerateNotifications(snap, s.Now())

	if err := s.repos.Notification.ReplaceAll(ctx, notifications); err != nil {
		return nil, log.Err("failed to store notifications", err)
	}

	if s.events != nil {
		s.events.NotificationsRefreshed(len(notifications))
	}

	log.Debug("Notifications recomputed", "count", len(notifications))
	return notifications, nil
}

// GenerateNotifications is the pure derivation: given the collections and the
// current instant it computes the actionable alert set. Iteration is over
// schedules; a rule whose vehicle no longer exists is silently skipped.
func GenerateNotifications(snap models.FleetSnapshot, now time.Time) []models.Notification {
	vehiclesByID := make(map[uuid.UUID]models.Vehicle, len(snap.Vehicles))
	for _, vehicle := range snap.Vehicles {
		vehiclesByID[vehicle.ID] = vehicle
	}
	usersByID := make(map[uuid.UUID]models.User, len(snap.Users))
	for _, user := range snap.Users {
		usersByID[user.ID] = user
	}

	var notifications []models.Notification

	for _, schedule := range snap.Schedules {
		vehicle, ok := vehiclesByID[schedule.VehicleID]
		if !ok {
			continue
		}

		due := ComputeDueStatus(vehicle, schedule, snap.History, now)

		if due.DaysUntilDue != nil {
			days := *due.DaysUntilDue
			if days <= DueSoonDays {
				message := fmt.Sprintf(
					"Maintenance '%s' for vehicle %s is required in %d days.",
					schedule.ServiceType, vehicle.Plate, int(math.Ceil(days)),
				)
				severity := models.SeverityWarning
				if days <= 0 {
					// DANGER supersedes WARNING, never both for one axis
					message = fmt.Sprintf(
						"Maintenance '%s' for vehicle %s is overdue.",
						schedule.ServiceType, vehicle.Plate,
					)
					severity = models.SeverityDanger
				}
				notifications = append(notifications, models.Notification{
					BaseUUIDModel: models.BaseUUIDModel{CreatedAt: now},
					VehicleID:     vehicle.ID,
					Message:       message,
					Severity:      severity,
				})
			}
		}

		if due.KmUntilDue != nil {
			km := *due.KmUntilDue
			if km <= DueSoonKm {
				message := fmt.Sprintf(
					"Maintenance '%s' for vehicle %s is required in approx. %d km.",
					schedule.ServiceType, vehicle.Plate, km,
				)
				severity := models.SeverityWarning
				if km <= 0 {
					message = fmt.Sprintf(
						"Maintenance '%s' for vehicle %s is overdue by mileage.",
						schedule.ServiceType, vehicle.Plate,
					)
					severity = models.SeverityDanger
				}
				// One logical service need, one alert: skip the distance axis
				// when the time axis already queued one for this pair
				if !hasServiceNotification(notifications, vehicle.ID, schedule.ServiceType) {
					notifications = append(notifications, models.Notification{
						BaseUUIDModel: models.BaseUUIDModel{CreatedAt: now},
						VehicleID:     vehicle.ID,
						Message:       message,
						Severity:      severity,
					})
				}
			}
		}
	}

	// Every open driver report is surfaced as an INFO alert unless an
	// existing message already carries its observation text
	for _, request := range snap.Requests {
		if request.Status != models.RequestOpen {
			continue
		}
		if containsObservation(notifications, request.Observations) {
			continue
		}

		reporterName := "driver"
		if reporter, ok := usersByID[request.ReportedBy]; ok {
			reporterName = reporter.Name
		}
		vehicle := vehiclesByID[request.VehicleID]

		notifications = append(notifications, models.Notification{
			BaseUUIDModel: models.BaseUUIDModel{CreatedAt: request.CreatedAt},
			VehicleID:     request.VehicleID,
			Message: fmt.Sprintf(
				"Report from %s: %q for vehicle %s.",
				reporterName, request.Observations, vehicle.Plate,
			),
			Severity: models.SeverityInfo,
		})
	}

	notifications = collapseDuplicateMessages(notifications)

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications
}

func hasServiceNotification(
	notifications []models.Notification,
	vehicleID uuid.UUID,
	serviceType models.ServiceType,
) bool {
	for _, notification := range notifications {
		if notification.VehicleID == vehicleID &&
			strings.Contains(notification.Message, string(serviceType)) {
			return true
		}
	}
	return false
}

func containsObservation(notifications []models.Notification, observations string) bool {
	for _, notification := range notifications {
		if strings.Contains(notification.Message, observations) {
			return true
		}
	}
	return false
}

func collapseDuplicateMessages(notifications []models.Notification) []models.Notification {
	seen := make(map[string]struct{}, len(notifications))
	deduped := notifications[:0]
	for _, notification := range notifications {
		if _, dup := seen[notification.Message]; dup {
			continue
		}
		seen[notification.Message] = struct{}{}
		deduped = append(deduped, notification)
	}
	return deduped
}
