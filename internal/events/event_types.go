package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers, formatted "<resource>.<action>".
type EventType string

// Resource names carried on events and used as cache namespaces.
const (
	ResourceUser     = "user"
	ResourceHost     = "host"
	ResourceProperty = "property"
	ResourceAmenity  = "amenity"
	ResourceBooking  = "booking"
	ResourceReview   = "review"
)

// Action names.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	EventUserCreated     EventType = ResourceUser + "." + ActionCreated
	EventUserUpdated     EventType = ResourceUser + "." + ActionUpdated
	EventUserDeleted     EventType = ResourceUser + "." + ActionDeleted
	EventHostCreated     EventType = ResourceHost + "." + ActionCreated
	EventHostUpdated     EventType = ResourceHost + "." + ActionUpdated
	EventHostDeleted     EventType = ResourceHost + "." + ActionDeleted
	EventPropertyCreated EventType = ResourceProperty + "." + ActionCreated
	EventPropertyUpdated EventType = ResourceProperty + "." + ActionUpdated
	EventPropertyDeleted EventType = ResourceProperty + "." + ActionDeleted
	EventAmenityCreated  EventType = ResourceAmenity + "." + ActionCreated
	EventAmenityUpdated  EventType = ResourceAmenity + "." + ActionUpdated
	EventAmenityDeleted  EventType = ResourceAmenity + "." + ActionDeleted
	EventBookingCreated  EventType = ResourceBooking + "." + ActionCreated
	EventBookingUpdated  EventType = ResourceBooking + "." + ActionUpdated
	EventBookingDeleted  EventType = ResourceBooking + "." + ActionDeleted
	EventReviewCreated   EventType = ResourceReview + "." + ActionCreated
	EventReviewUpdated   EventType = ResourceReview + "." + ActionUpdated
	EventReviewDeleted   EventType = ResourceReview + "." + ActionDeleted
)

// AllEventTypes lists every event the services emit.
var AllEventTypes = []EventType{
	EventUserCreated, EventUserUpdated, EventUserDeleted,
	EventHostCreated, EventHostUpdated, EventHostDeleted,
	EventPropertyCreated, EventPropertyUpdated, EventPropertyDeleted,
	EventAmenityCreated, EventAmenityUpdated, EventAmenityDeleted,
	EventBookingCreated, EventBookingUpdated, EventBookingDeleted,
	EventReviewCreated, EventReviewUpdated, EventReviewDeleted,
}

// Event represents a domain event emitted by services after a successful mutation.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Resource   string      `json:"resource"`
	ResourceID string      `json:"resourceId"`
	ActorID    string      `json:"actorId,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event for resource/action. The actor is the authenticated caller, if any.
func NewEvent(resource, action, resourceID, actorID string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventType(resource + "." + action),
		Resource:   resource,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}
