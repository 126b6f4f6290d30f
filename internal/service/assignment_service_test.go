package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/spec-kit/enquiry-service/internal/domain"
)

type assignmentFixture struct {
	users     *fakeUserRepo
	enquiries *fakeEnquiryRepo
	activity  *fakeActivityRepo
	svc       *AssignmentService
	actor     *domain.User
	enquiry   *domain.Enquiry
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	users := newFakeUserRepo()
	enquiries := newFakeEnquiryRepo(users)
	activity := newFakeActivityRepo(users)

	actor := seedStaff(t, users, "Actor", "actor@example.com")
	enquiry := &domain.Enquiry{
		CustomerName: "Jane Customer",
		Email:        "jane@example.com",
		Status:       domain.EnquiryStatusNew,
		CreatedByID:  actor.ID,
	}
	if err := enquiries.Create(context.Background(), enquiry); err != nil {
		t.Fatalf("seed enquiry: %v", err)
	}

	return &assignmentFixture{
		users:     users,
		enquiries: enquiries,
		activity:  activity,
		svc: NewAssignmentService(AssignmentDependencies{
			EnquiryRepo:  enquiries,
			UserRepo:     users,
			ActivityRepo: activity,
		}),
		actor:   actor,
		enquiry: enquiry,
	}
}

func TestAssignToStaff(t *testing.T) {
	fx := newAssignmentFixture(t)
	assignee := seedStaff(t, fx.users, "Bob Staff", "bob@example.com")
	ctx := context.Background()

	updated, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, &assignee.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssignedToID == nil || *updated.AssignedToID != assignee.ID {
		t.Fatal("expected assignee to be set")
	}
	if updated.AssignedTo == nil || updated.AssignedTo.Email != assignee.Email {
		t.Fatal("expected assignee reference to be expanded")
	}

	entries, err := fx.svc.Activity(ctx, fx.enquiry.ID)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(entries))
	}
	if entries[0].Action != domain.ActivityActionAssigned {
		t.Fatalf("action %q, want assigned", entries[0].Action)
	}
	want := fmt.Sprintf("Assigned to %s (%s)", assignee.Name, assignee.Email)
	if entries[0].Details != want {
		t.Fatalf("details %q, want %q", entries[0].Details, want)
	}
	if entries[0].Actor == nil || entries[0].Actor.Email != fx.actor.Email {
		t.Fatal("expected actor reference to be expanded")
	}
}

func TestAssignToAdminRejected(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	admin := &domain.User{Name: "Ada Admin", Email: "ada@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	if err := fx.users.Create(ctx, admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	_, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, &admin.ID)
	domainErr := asDomainError(t, err)
	if domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("code %q, want VALIDATION_FAILED", domainErr.Code)
	}
	if domainErr.Message != "Assigned user must be a staff member" {
		t.Fatalf("message %q", domainErr.Message)
	}

	current, err := fx.enquiries.GetByID(ctx, fx.enquiry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.AssignedToID != nil {
		t.Fatal("rejected assignment must leave assignee unchanged")
	}

	entries, err := fx.svc.Activity(ctx, fx.enquiry.ID)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected assignment must not be journaled, got %d entries", len(entries))
	}
}

func TestAssignUnknownUserRejected(t *testing.T) {
	fx := newAssignmentFixture(t)

	tests := []struct {
		name     string
		assignee string
	}{
		{"malformed id", "not-a-uuid"},
		{"missing user", uuid.NewString()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assignee := tc.assignee
			_, err := fx.svc.Assign(context.Background(), fx.actor.ID, fx.enquiry.ID, &assignee)
			domainErr := asDomainError(t, err)
			if domainErr.Code != "VALIDATION_FAILED" {
				t.Fatalf("code %q, want VALIDATION_FAILED", domainErr.Code)
			}
			if domainErr.Message != "Assigned user not found" {
				t.Fatalf("message %q", domainErr.Message)
			}
		})
	}
}

func TestAssignEnquiryNotFound(t *testing.T) {
	fx := newAssignmentFixture(t)
	assignee := seedStaff(t, fx.users, "Bob Staff", "bob@example.com")

	_, err := fx.svc.Assign(context.Background(), fx.actor.ID, uuid.NewString(), &assignee.ID)
	domainErr := asDomainError(t, err)
	if domainErr.Code != "NOT_FOUND" {
		t.Fatalf("code %q, want NOT_FOUND", domainErr.Code)
	}
}

func TestUnassignAlreadyUnassigned(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	updated, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, nil)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if updated.AssignedToID != nil {
		t.Fatal("expected no assignee")
	}

	entries, err := fx.svc.Activity(ctx, fx.enquiry.ID)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("unassigning an unassigned enquiry still journals, got %d entries", len(entries))
	}
	if entries[0].Action != domain.ActivityActionUnassigned {
		t.Fatalf("action %q, want unassigned", entries[0].Action)
	}
	if entries[0].Details != "Unassigned" {
		t.Fatalf("details %q, want Unassigned", entries[0].Details)
	}
}

func TestEmptyAssigneeMeansUnassign(t *testing.T) {
	fx := newAssignmentFixture(t)
	assignee := seedStaff(t, fx.users, "Bob Staff", "bob@example.com")
	ctx := context.Background()

	if _, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, &assignee.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	empty := ""
	updated, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, &empty)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if updated.AssignedToID != nil {
		t.Fatal("empty assignee id must clear the assignment")
	}
}

func TestActivityNewestFirst(t *testing.T) {
	fx := newAssignmentFixture(t)
	assignee := seedStaff(t, fx.users, "Bob Staff", "bob@example.com")
	ctx := context.Background()

	if _, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, &assignee.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := fx.svc.Assign(ctx, fx.actor.ID, fx.enquiry.ID, nil); err != nil {
		t.Fatalf("unassign: %v", err)
	}

	entries, err := fx.svc.Activity(ctx, fx.enquiry.ID)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != domain.ActivityActionUnassigned || entries[1].Action != domain.ActivityActionAssigned {
		t.Fatal("entries must be ordered newest first")
	}
}

func TestActivityMalformedEnquiryID(t *testing.T) {
	fx := newAssignmentFixture(t)

	_, err := fx.svc.Activity(context.Background(), "not-a-uuid")
	domainErr := asDomainError(t, err)
	if domainErr.Code != "NOT_FOUND" {
		t.Fatalf("code %q, want NOT_FOUND", domainErr.Code)
	}
}
