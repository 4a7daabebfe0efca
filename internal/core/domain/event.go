package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventName string

const (
	EventCreated   EventName = "created"
	EventConfirmed EventName = "confirmed"
	EventCompleted EventName = "completed"
	EventCancelled EventName = "cancelled"
	EventDeleted   EventName = "deleted"
)

// DefaultEventTopic is where maintenance lifecycle events are published.
const DefaultEventTopic = "maintenance-events"

type MaintenanceEvent struct {
	Event       EventName        `json:"event"`
	Maintenance *MaintenanceTask `json:"maintenance"`
	EventID     uuid.UUID        `json:"event_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

func NewMaintenanceEvent(name EventName, task *MaintenanceTask) *MaintenanceEvent {
	return &MaintenanceEvent{
		Event:       name,
		Maintenance: task,
		EventID:     uuid.New(),
		OccurredAt:  time.Now().UTC(),
	}
}

// EventForStatus maps a reached status to the event announcing it.
func EventForStatus(s MaintenanceStatus) EventName {
	return EventName(s)
}
