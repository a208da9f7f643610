package models

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"

	"github.com/shopspring/decimal"
)

type TimelineKind string

const (
	TimelineCompleted   TimelineKind = "completed"
	TimelineReported    TimelineKind = "reported"
	TimelineScheduled   TimelineKind = "scheduled"
	TimelineScheduledKm TimelineKind = "scheduled_km"
)

type TimelineStatus string

const (
	TimelineStatusCompleted      TimelineStatus = "completed"
	TimelineStatusUpcoming       TimelineStatus = "upcoming"
	TimelineStatusOverdue        TimelineStatus = "overdue"
	TimelineStatusNeedsAttention TimelineStatus = "needs_attention"
)

// TimelineEvent is one entry in a vehicle's mixed maintenance feed. SourceID
// points at the record, request, or schedule the entry was derived from.
type TimelineEvent struct {
	SourceID    uuid.UUID      `json:"sourceId"`
	Kind        TimelineKind   `json:"kind"`
	Status      TimelineStatus `json:"status"`
	Date        time.Time      `json:"date"`
	ServiceType ServiceType    `json:"serviceType"`

	// Completed events only
	Cost             *decimal.Decimal `json:"cost,omitempty"`
	Workshop         string           `json:"workshop,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	MileageAtService int              `json:"mileageAtService,omitempty"`

	// Reported events only
	Observations string         `json:"observations,omitempty"`
	ReporterName string         `json:"reporterName,omitempty"`
	Photo        datatypes.JSON `json:"photo,omitempty"`

	// Scheduled-by-distance events only
	DueMileage int `json:"dueMileage,omitempty"`

	Display DisplayDescriptor `json:"display"`
}
