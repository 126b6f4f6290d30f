package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/enquiry-service/internal/domain"
)

func seedEnquiryWithStatus(t *testing.T, repo *fakeEnquiryRepo, status domain.EnquiryStatus, createdAt time.Time) {
	t.Helper()
	enquiry := &domain.Enquiry{
		CustomerName: "Jane Customer",
		Email:        "jane@example.com",
		Status:       status,
		CreatedByID:  "creator",
	}
	if err := repo.Create(context.Background(), enquiry); err != nil {
		t.Fatalf("seed enquiry: %v", err)
	}
	repo.enquiries[len(repo.enquiries)-1].CreatedAt = createdAt
}

func TestStatsCountsAddUp(t *testing.T) {
	enquiries := newFakeEnquiryRepo(nil)
	now := time.Now()

	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now)
	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now.Add(-time.Hour))
	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusInProgress, now.Add(-2*time.Hour))
	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusClosed, now.Add(-3*time.Hour))

	svc := NewStatsService(enquiries, nil, nil)
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Total != 4 {
		t.Fatalf("total %d, want 4", stats.Total)
	}
	if got := stats.New + stats.InProgress + stats.Closed; got != stats.Total {
		t.Fatalf("per-status sum %d, want %d", got, stats.Total)
	}
	if stats.New != 2 || stats.InProgress != 1 || stats.Closed != 1 {
		t.Fatalf("counts new=%d inProgress=%d closed=%d", stats.New, stats.InProgress, stats.Closed)
	}
}

func TestStatsRecentCapAndOrder(t *testing.T) {
	enquiries := newFakeEnquiryRepo(nil)
	now := time.Now()

	for i := 0; i < 7; i++ {
		seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now.Add(-time.Duration(i)*time.Hour))
	}

	svc := NewStatsService(enquiries, nil, nil)
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if len(stats.Recent) != 5 {
		t.Fatalf("recent length %d, want 5", len(stats.Recent))
	}
	for i := 1; i < len(stats.Recent); i++ {
		if stats.Recent[i].CreatedAt.After(stats.Recent[i-1].CreatedAt) {
			t.Fatal("recent entries must be ordered newest first")
		}
	}
}

func TestStatsLast7DaysOmitsOldAndEmptyDays(t *testing.T) {
	enquiries := newFakeEnquiryRepo(nil)
	now := time.Now()

	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now)
	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now)
	seedEnquiryWithStatus(t, enquiries, domain.EnquiryStatusNew, now.Add(-30*24*time.Hour))

	svc := NewStatsService(enquiries, nil, nil)
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if len(stats.Last7Days) != 1 {
		t.Fatalf("buckets %d, want 1", len(stats.Last7Days))
	}
	bucket := stats.Last7Days[0]
	if bucket.Date != now.Format("2006-01-02") {
		t.Fatalf("bucket date %q, want today", bucket.Date)
	}
	if bucket.Count != 2 {
		t.Fatalf("bucket count %d, want 2", bucket.Count)
	}
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewStatsService(newFakeEnquiryRepo(nil), nil, nil)
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Total != 0 {
		t.Fatalf("total %d, want 0", stats.Total)
	}
	if stats.Recent == nil || stats.Last7Days == nil {
		t.Fatal("recent and last7days must be empty slices, not nil")
	}
}
