package domain

import "time"

// EnquiryStatus enumerates lifecycle states for enquiries.
type EnquiryStatus string

const (
	EnquiryStatusNew        EnquiryStatus = "new"
	EnquiryStatusInProgress EnquiryStatus = "in-progress"
	EnquiryStatusClosed     EnquiryStatus = "closed"
)

// ValidEnquiryStatus reports whether the value is a known status.
func ValidEnquiryStatus(s EnquiryStatus) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusInProgress, EnquiryStatusClosed:
		return true
	}
	return false
}

// Enquiry is the aggregate for customer enquiries. AssignedToID and
// CreatedByID are weak references; the expanded AssignedTo/CreatedBy
// projections are nil when the referenced user has been deleted.
type Enquiry struct {
	ID           string
	CustomerName string
	Email        string
	Phone        *string
	Message      *string
	Status       EnquiryStatus
	AssignedToID *string
	CreatedByID  string
	AssignedTo   *UserRef
	CreatedBy    *UserRef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
