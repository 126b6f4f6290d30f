package events

import (
	"time"

	"github.com/spec-kit/enquiry-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEnquiryCreated    EventType = "enquiry_created"
	EventEnquiryAssigned   EventType = "enquiry_assigned"
	EventEnquiryUnassigned EventType = "enquiry_unassigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EnquiryID string      `json:"enquiry_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EnquiryCreatedPayload payload.
type EnquiryCreatedPayload struct {
	CustomerName string               `json:"customer_name"`
	Email        string               `json:"email"`
	Status       domain.EnquiryStatus `json:"status"`
}

// EnquiryAssignedPayload payload.
type EnquiryAssignedPayload struct {
	AssigneeID    string `json:"assignee_id"`
	AssigneeName  string `json:"assignee_name"`
	AssigneeEmail string `json:"assignee_email"`
}

// EnquiryUnassignedPayload payload.
type EnquiryUnassignedPayload struct {
	PreviousAssigneeID *string `json:"previous_assignee_id,omitempty"`
}
