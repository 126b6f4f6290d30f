package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/events"
	"github.com/spec-kit/enquiry-service/internal/repository"
	apperrors "github.com/spec-kit/enquiry-service/pkg/util"
)

// EnquiryService coordinates the enquiry lifecycle.
type EnquiryService struct {
	enquiries  repository.EnquiryRepository
	dispatcher events.Dispatcher
}

// NewEnquiryService constructs the service.
func NewEnquiryService(enquiries repository.EnquiryRepository, dispatcher events.Dispatcher) *EnquiryService {
	return &EnquiryService{enquiries: enquiries, dispatcher: dispatcher}
}

// EnquiryCreateInput describes enquiry creation payload.
type EnquiryCreateInput struct {
	CustomerName string
	Email        string
	Phone        *string
	Message      *string
}

// EnquiryUpdateInput describes a partial update; nil fields are untouched.
type EnquiryUpdateInput struct {
	CustomerName *string
	Email        *string
	Phone        *string
	Message      *string
	Status       *string
	AssignedTo   *string
}

// EnquiryListInput describes listing parameters as received from the query
// string; unrecognized options never reach this struct.
type EnquiryListInput struct {
	Status     *string
	AssignedTo *string
	CreatedBy  *string
	Search     *string
	Page       int
	Limit      int
	SortAsc    bool
}

// EnquiryPage is one page of enquiries plus paging metadata.
type EnquiryPage struct {
	Items []domain.Enquiry
	Total int
	Page  int
	Pages int
}

// Create persists a new enquiry with status "new" and no assignee.
func (s *EnquiryService) Create(ctx context.Context, creatorID string, input EnquiryCreateInput) (*domain.Enquiry, error) {
	details := map[string]any{}
	if !validName(input.CustomerName) {
		details["customerName"] = "must be at least 2 characters"
	}
	if !validEmail(input.Email) {
		details["email"] = "must be a valid email address"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	enquiry := &domain.Enquiry{
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Message:      input.Message,
		Status:       domain.EnquiryStatusNew,
		AssignedToID: nil,
		CreatedByID:  creatorID,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventEnquiryCreated,
		EnquiryID: enquiry.ID,
		ActorID:   creatorID,
		Payload: events.EnquiryCreatedPayload{
			CustomerName: enquiry.CustomerName,
			Email:        enquiry.Email,
			Status:       enquiry.Status,
		},
	})
	return enquiry, nil
}

// List returns a filtered, paginated page with assignee/creator expansion.
func (s *EnquiryService) List(ctx context.Context, input EnquiryListInput) (*EnquiryPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repository.EnquiryFilter{
		AssignedTo: input.AssignedTo,
		CreatedBy:  input.CreatedBy,
		Search:     input.Search,
		SortAsc:    input.SortAsc,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	if input.Status != nil {
		status := domain.EnquiryStatus(*input.Status)
		filter.Status = &status
	}

	total, err := s.enquiries.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	items, err := s.enquiries.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.Enquiry{}
	}

	return &EnquiryPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Get returns a single enquiry with expanded references.
func (s *EnquiryService) Get(ctx context.Context, id string) (*domain.Enquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": id})
	}
	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return enquiry, nil
}

// Update applies the provided fields only, re-validating each. Status
// changes through here are deliberately not journaled in the activity log;
// only assignment changes are.
func (s *EnquiryService) Update(ctx context.Context, id string, input EnquiryUpdateInput) (*domain.Enquiry, error) {
	details := map[string]any{}
	if input.CustomerName != nil && !validName(*input.CustomerName) {
		details["customerName"] = "must be at least 2 characters"
	}
	if input.Email != nil && !validEmail(*input.Email) {
		details["email"] = "must be a valid email address"
	}
	if input.Status != nil && !domain.ValidEnquiryStatus(domain.EnquiryStatus(*input.Status)) {
		details["status"] = "must be one of new, in-progress, closed"
	}
	if input.AssignedTo != nil {
		if _, err := uuid.Parse(*input.AssignedTo); err != nil {
			details["assignedTo"] = "must be a valid user id"
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	enquiry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		enquiry.CustomerName = *input.CustomerName
	}
	if input.Email != nil {
		enquiry.Email = *input.Email
	}
	if input.Phone != nil {
		enquiry.Phone = input.Phone
	}
	if input.Message != nil {
		enquiry.Message = input.Message
	}
	if input.Status != nil {
		enquiry.Status = domain.EnquiryStatus(*input.Status)
	}
	if input.AssignedTo != nil {
		enquiry.AssignedToID = input.AssignedTo
	}

	if err := s.enquiries.Update(ctx, enquiry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete hard-deletes an enquiry. Activity entries are left in place.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("enquiry", map[string]any{"id": id})
	}
	if err := s.enquiries.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("enquiry", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *EnquiryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
