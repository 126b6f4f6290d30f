package domain

import "time"

// ActivityAction identifies what an activity entry records.
type ActivityAction string

const (
	ActivityActionAssigned   ActivityAction = "assigned"
	ActivityActionUnassigned ActivityAction = "unassigned"
)

// ActivityEntry is an immutable audit record for an assignment change.
// UserID is the actor; ActorRef expands to {name,email} on read and is nil
// when the actor has been deleted.
type ActivityEntry struct {
	ID        string
	Action    ActivityAction
	EnquiryID string
	UserID    *string
	Details   string
	Actor     *ActorRef
	CreatedAt time.Time
}

// ActorRef is the projection of the acting user attached to activity reads.
type ActorRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
