package services

import (
	"sort"
	"time"

	"fleetdesk/internal/models"

	"github.com/google/uuid"
)

// ComposeTimeline merges one vehicle's completed services, open driver
// reports, and schedule projections into a single feed ordered by date
// descending. Open reports carry needs-attention urgency. Distance-based
// projections are a fallback: emitted dated now only when the vehicle has
// reached the due mileage and the same rule produced no date-based entry.
func ComposeTimeline(
	vehicle models.Vehicle,
	history []models.MaintenanceRecord,
	schedules []models.MaintenanceSchedule,
	reports []models.OpenReport,
	now time.Time,
) []models.TimelineEvent {
	var events []models.TimelineEvent

	for _, record := range history {
		cost := record.Cost
		events = append(events, models.TimelineEvent{
			SourceID:         record.ID,
			Kind:             models.TimelineCompleted,
			Status:           models.TimelineStatusCompleted,
			Date:             record.ServiceDate,
			ServiceType:      record.ServiceType,
			Cost:             &cost,
			Workshop:         record.Workshop,
			Notes:            record.Notes,
			MileageAtService: record.MileageAtService,
		})
	}

	for _, report := range reports {
		events = append(events, models.TimelineEvent{
			SourceID:     report.ID,
			Kind:         models.TimelineReported,
			Status:       models.TimelineStatusNeedsAttention,
			Date:         report.CreatedAt,
			ServiceType:  models.ServiceDriverReport,
			Observations: report.Observations,
			ReporterName: report.ReporterName,
			Photo:        report.Photo,
		})
	}

	datedSchedules := make(map[uuid.UUID]struct{}, len(schedules))

	for _, schedule := range schedules {
		due := ComputeDueStatus(vehicle, schedule, history, now)
		if due.DueDate == nil {
			continue
		}

		status := models.TimelineStatusOverdue
		if due.DueDate.After(now) {
			status = models.TimelineStatusUpcoming
		}
		events = append(events, models.TimelineEvent{
			SourceID:    schedule.ID,
			Kind:        models.TimelineScheduled,
			Status:      status,
			Date:        *due.DueDate,
			ServiceType: schedule.ServiceType,
		})
		datedSchedules[schedule.ID] = struct{}{}
	}

	for _, schedule := range schedules {
		if _, dated := datedSchedules[schedule.ID]; dated {
			continue
		}
		due := ComputeDueStatus(vehicle, schedule, history, now)
		if due.DueMileage == nil || vehicle.CurrentMileage < *due.DueMileage {
			continue
		}
		events = append(events, models.TimelineEvent{
			SourceID:    schedule.ID,
			Kind:        models.TimelineScheduledKm,
			Status:      models.TimelineStatusOverdue,
			Date:        now,
			ServiceType: schedule.ServiceType,
			DueMileage:  *due.DueMileage,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})

	for i := range events {
		events[i].Display = models.ServiceTypeDescriptor(events[i].ServiceType)
	}

	return events
}
