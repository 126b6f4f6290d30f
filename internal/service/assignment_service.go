package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/events"
	"github.com/spec-kit/enquiry-service/internal/repository"
	apperrors "github.com/spec-kit/enquiry-service/pkg/util"
)

// AssignmentService owns the assigned-to state machine and the audit trail.
// Every transition, including unassigning an already-unassigned enquiry,
// appends exactly one activity entry.
type AssignmentService struct {
	enquiries  repository.EnquiryRepository
	users      repository.UserRepository
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	EnquiryRepo  repository.EnquiryRepository
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	Dispatcher   events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		enquiries:  deps.EnquiryRepo,
		users:      deps.UserRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Assign sets or clears the assignee of an enquiry. A nil or empty assignee
// id unassigns. The target must exist and hold the staff role at assignment
// time; it is not re-validated afterwards.
func (s *AssignmentService) Assign(ctx context.Context, actorID, enquiryID string, assigneeID *string) (*domain.Enquiry, error) {
	if _, err := uuid.Parse(enquiryID); err != nil {
		return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": enquiryID})
	}

	if assigneeID == nil || *assigneeID == "" {
		return s.unassign(ctx, actorID, enquiryID)
	}

	if _, err := uuid.Parse(*assigneeID); err != nil {
		return nil, apperrors.NewValidationError("Assigned user not found", map[string]any{"assignedTo": *assigneeID})
	}
	assignee, err := s.users.GetByID(ctx, *assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Assigned user not found", map[string]any{"assignedTo": *assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	if assignee.Role != domain.RoleStaff {
		return nil, apperrors.NewValidationError("Assigned user must be a staff member", map[string]any{"assignedTo": *assigneeID})
	}

	enquiry, err := s.loadEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	enquiry.AssignedToID = &assignee.ID
	if err := s.enquiries.Update(ctx, enquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.record(ctx, domain.ActivityActionAssigned, enquiryID, actorID,
		fmt.Sprintf("Assigned to %s (%s)", assignee.Name, assignee.Email)); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventEnquiryAssigned,
		EnquiryID: enquiryID,
		ActorID:   actorID,
		Payload: events.EnquiryAssignedPayload{
			AssigneeID:    assignee.ID,
			AssigneeName:  assignee.Name,
			AssigneeEmail: assignee.Email,
		},
	})

	return s.refetch(ctx, enquiryID)
}

func (s *AssignmentService) unassign(ctx context.Context, actorID, enquiryID string) (*domain.Enquiry, error) {
	enquiry, err := s.loadEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	previous := enquiry.AssignedToID
	enquiry.AssignedToID = nil
	if err := s.enquiries.Update(ctx, enquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.record(ctx, domain.ActivityActionUnassigned, enquiryID, actorID, "Unassigned"); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventEnquiryUnassigned,
		EnquiryID: enquiryID,
		ActorID:   actorID,
		Payload:   events.EnquiryUnassignedPayload{PreviousAssigneeID: previous},
	})

	return s.refetch(ctx, enquiryID)
}

// Activity lists the audit entries for an enquiry, newest first, with the
// actor expanded to name and email.
func (s *AssignmentService) Activity(ctx context.Context, enquiryID string) ([]domain.ActivityEntry, error) {
	if _, err := uuid.Parse(enquiryID); err != nil {
		return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": enquiryID})
	}
	entries, err := s.activity.ListByEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	return entries, nil
}

func (s *AssignmentService) loadEnquiry(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	enquiry, err := s.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("enquiry", map[string]any{"id": enquiryID})
		}
		return nil, apperrors.MapError(err)
	}
	return enquiry, nil
}

func (s *AssignmentService) refetch(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	enquiry, err := s.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return enquiry, nil
}

func (s *AssignmentService) record(ctx context.Context, action domain.ActivityAction, enquiryID, actorID, details string) error {
	actor := actorID
	return s.activity.Create(ctx, &domain.ActivityEntry{
		Action:    action,
		EnquiryID: enquiryID,
		UserID:    &actor,
		Details:   details,
	})
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
