package dto

import (
	"time"

	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/repository"
)

// CreateEnquiryRequest payload.
type CreateEnquiryRequest struct {
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Message      *string `json:"message"`
}

// UpdateEnquiryRequest payload; absent fields are untouched.
type UpdateEnquiryRequest struct {
	CustomerName *string `json:"customerName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Message      *string `json:"message"`
	Status       *string `json:"status"`
	AssignedTo   *string `json:"assignedTo"`
}

// AssignRequest payload; a null or empty assignedTo unassigns.
type AssignRequest struct {
	AssignedTo *string `json:"assignedTo"`
}

// EnquiryResponse is an enquiry with its weak references expanded.
type EnquiryResponse struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customerName"`
	Email        string               `json:"email"`
	Phone        *string              `json:"phone"`
	Message      *string              `json:"message"`
	Status       domain.EnquiryStatus `json:"status"`
	AssignedTo   *domain.UserRef      `json:"assignedTo"`
	CreatedBy    *domain.UserRef      `json:"createdBy"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// EnquiryListData is one page of enquiries plus paging metadata.
type EnquiryListData struct {
	Enquiries []EnquiryResponse `json:"enquiries"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	Pages     int               `json:"pages"`
}

// ActivityResponse is one audit entry with the actor expanded.
type ActivityResponse struct {
	ID        string                `json:"id"`
	Action    domain.ActivityAction `json:"action"`
	Enquiry   string                `json:"enquiry"`
	User      *domain.ActorRef      `json:"user"`
	Details   string                `json:"details"`
	CreatedAt time.Time             `json:"createdAt"`
}

// StatsData mirrors the dashboard aggregation payload.
type StatsData struct {
	Total      int                        `json:"total"`
	New        int                        `json:"new"`
	InProgress int                        `json:"inProgress"`
	Closed     int                        `json:"closed"`
	Recent     []repository.RecentEnquiry `json:"recent"`
	Last7Days  []repository.DayCount      `json:"last7days"`
}

// NewEnquiryResponse maps a domain enquiry.
func NewEnquiryResponse(enquiry *domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		ID:           enquiry.ID,
		CustomerName: enquiry.CustomerName,
		Email:        enquiry.Email,
		Phone:        enquiry.Phone,
		Message:      enquiry.Message,
		Status:       enquiry.Status,
		AssignedTo:   enquiry.AssignedTo,
		CreatedBy:    enquiry.CreatedBy,
		CreatedAt:    enquiry.CreatedAt,
		UpdatedAt:    enquiry.UpdatedAt,
	}
}

// NewActivityResponse maps a domain activity entry.
func NewActivityResponse(entry *domain.ActivityEntry) ActivityResponse {
	return ActivityResponse{
		ID:        entry.ID,
		Action:    entry.Action,
		Enquiry:   entry.EnquiryID,
		User:      entry.Actor,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	}
}
