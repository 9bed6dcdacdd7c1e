package domain

import "time"

// EventType names a domain event published to other systems
type EventType string

const (
	EventActionRegistered EventType = "action.registered"
	EventActionDeleted    EventType = "action.deleted"
	EventMonthClosed      EventType = "month.closed"
)

// Event is a fact that already happened in the dashboard
type Event struct {
	Type       EventType      `json:"type"`
	MonthTag   MonthTag       `json:"month_tag"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
