package models

import (
	"github.com/google/uuid"
)

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityDanger  NotificationSeverity = "danger"
)

// Notification is derived state: the whole collection is regenerated on every
// recompute and the prior set discarded. IsRead is always false after a
// regeneration; read tracking is intentionally unimplemented.
type Notification struct {
	BaseUUIDModel
	VehicleID uuid.UUID            `gorm:"type:uuid;not null;index:idx_notifications_vehicle" json:"vehicleId"`
	Message   string               `gorm:"type:text;not null"                                 json:"message"`
	Severity  NotificationSeverity `gorm:"type:text;not null"                                 json:"severity"`
	IsRead    bool                 `gorm:"type:bool;default:false"                            json:"isRead"`
}

// NotificationView is a Notification decorated with its severity rendering
// hints. API responses serve views; the engine and store only deal in the
// bare rows.
type NotificationView struct {
	Notification
	Display DisplayDescriptor `json:"display"`
}

func NewNotificationViews(notifications []Notification) []NotificationView {
	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NotificationView{
			Notification: n,
			Display:      SeverityDescriptor(n.Severity),
		})
	}
	return views
}

// FleetSnapshot is a consistent read-only projection of every authoritative
// collection. The notification engine derives from it and the AI assistant
// serializes it into its system prompt.
type FleetSnapshot struct {
	Vehicles      []Vehicle             `json:"vehicles"`
	History       []MaintenanceRecord   `json:"maintenanceHistory"`
	Schedules     []MaintenanceSchedule `json:"scheduledMaintenances"`
	Requests      []MaintenanceRequest  `json:"maintenanceRequests"`
	Notifications []Notification        `json:"notifications"`
	Users         []User                `json:"-"`
}
