package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/repository"
)

// In-memory repository fakes so services can be exercised without Postgres.

type fakeUserRepo struct {
	users []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			clone := *user
			r.users[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for i, existing := range r.users {
		if existing.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.ID == id {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == email {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) matching(filter repository.UserFilter) []*domain.User {
	var result []*domain.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if !strings.Contains(strings.ToLower(user.Name), needle) &&
				!strings.Contains(strings.ToLower(user.Email), needle) {
				continue
			}
		}
		result = append(result, user)
	}
	return result
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	matched := r.matching(filter)
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch filter.SortField {
		case "name":
			less = matched[i].Name < matched[j].Name
		case "email":
			less = matched[i].Email < matched[j].Email
		case "role":
			less = matched[i].Role < matched[j].Role
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if filter.SortAsc {
			return less
		}
		return !less
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]domain.User, 0, end-offset)
	for _, user := range matched[offset:end] {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) Count(_ context.Context, filter repository.UserFilter) (int, error) {
	return len(r.matching(filter)), nil
}

type fakeEnquiryRepo struct {
	enquiries []*domain.Enquiry
	users     *fakeUserRepo
}

func newFakeEnquiryRepo(users *fakeUserRepo) *fakeEnquiryRepo {
	return &fakeEnquiryRepo{users: users}
}

func (r *fakeEnquiryRepo) Create(_ context.Context, enquiry *domain.Enquiry) error {
	enquiry.ID = uuid.NewString()
	enquiry.CreatedAt = time.Now()
	enquiry.UpdatedAt = enquiry.CreatedAt
	clone := *enquiry
	r.enquiries = append(r.enquiries, &clone)
	return nil
}

func (r *fakeEnquiryRepo) Update(_ context.Context, enquiry *domain.Enquiry) error {
	for i, existing := range r.enquiries {
		if existing.ID == enquiry.ID {
			clone := *enquiry
			clone.UpdatedAt = time.Now()
			r.enquiries[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeEnquiryRepo) Delete(_ context.Context, id string) error {
	for i, existing := range r.enquiries {
		if existing.ID == id {
			r.enquiries = append(r.enquiries[:i], r.enquiries[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeEnquiryRepo) expand(enquiry domain.Enquiry) domain.Enquiry {
	enquiry.AssignedTo = nil
	enquiry.CreatedBy = nil
	if r.users == nil {
		return enquiry
	}
	if enquiry.AssignedToID != nil {
		if user, err := r.users.GetByID(context.Background(), *enquiry.AssignedToID); err == nil {
			enquiry.AssignedTo = user.Ref()
		}
	}
	if user, err := r.users.GetByID(context.Background(), enquiry.CreatedByID); err == nil {
		enquiry.CreatedBy = user.Ref()
	}
	return enquiry
}

func (r *fakeEnquiryRepo) GetByID(_ context.Context, id string) (*domain.Enquiry, error) {
	for _, existing := range r.enquiries {
		if existing.ID == id {
			expanded := r.expand(*existing)
			return &expanded, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEnquiryRepo) matching(filter repository.EnquiryFilter) []*domain.Enquiry {
	var result []*domain.Enquiry
	for _, enquiry := range r.enquiries {
		if filter.Status != nil && enquiry.Status != *filter.Status {
			continue
		}
		if filter.AssignedTo != nil {
			if enquiry.AssignedToID == nil || *enquiry.AssignedToID != *filter.AssignedTo {
				continue
			}
		}
		if filter.CreatedBy != nil && enquiry.CreatedByID != *filter.CreatedBy {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if !strings.Contains(strings.ToLower(enquiry.CustomerName), needle) &&
				!strings.Contains(strings.ToLower(enquiry.Email), needle) {
				continue
			}
		}
		result = append(result, enquiry)
	}
	return result
}

func (r *fakeEnquiryRepo) List(_ context.Context, filter repository.EnquiryFilter) ([]domain.Enquiry, error) {
	matched := r.matching(filter)
	sort.SliceStable(matched, func(i, j int) bool {
		if filter.SortAsc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]domain.Enquiry, 0, end-offset)
	for _, enquiry := range matched[offset:end] {
		result = append(result, r.expand(*enquiry))
	}
	return result, nil
}

func (r *fakeEnquiryRepo) Count(_ context.Context, filter repository.EnquiryFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *fakeEnquiryRepo) CountByStatus(_ context.Context, status *domain.EnquiryStatus) (int, error) {
	if status == nil {
		return len(r.enquiries), nil
	}
	count := 0
	for _, enquiry := range r.enquiries {
		if enquiry.Status == *status {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnquiryRepo) ListRecent(_ context.Context, limit int) ([]repository.RecentEnquiry, error) {
	if limit <= 0 {
		limit = 5
	}
	ordered := append([]*domain.Enquiry{}, r.enquiries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[j].CreatedAt.Before(ordered[i].CreatedAt)
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	result := make([]repository.RecentEnquiry, 0, len(ordered))
	for _, enquiry := range ordered {
		result = append(result, repository.RecentEnquiry{
			ID:           enquiry.ID,
			CustomerName: enquiry.CustomerName,
			Email:        enquiry.Email,
			Status:       enquiry.Status,
			CreatedAt:    enquiry.CreatedAt,
		})
	}
	return result, nil
}

func (r *fakeEnquiryRepo) CountByDaySince(_ context.Context, since time.Time) ([]repository.DayCount, error) {
	buckets := map[string]int{}
	for _, enquiry := range r.enquiries {
		if enquiry.CreatedAt.Before(since) {
			continue
		}
		buckets[enquiry.CreatedAt.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]repository.DayCount, 0, len(days))
	for _, day := range days {
		result = append(result, repository.DayCount{Date: day, Count: buckets[day]})
	}
	return result, nil
}

type fakeActivityRepo struct {
	entries []domain.ActivityEntry
	users   *fakeUserRepo
}

func newFakeActivityRepo(users *fakeUserRepo) *fakeActivityRepo {
	return &fakeActivityRepo{users: users}
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *domain.ActivityEntry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) ListByEnquiry(_ context.Context, enquiryID string) ([]domain.ActivityEntry, error) {
	var result []domain.ActivityEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if entry.EnquiryID != enquiryID {
			continue
		}
		entry.Actor = nil
		if r.users != nil && entry.UserID != nil {
			if user, err := r.users.GetByID(context.Background(), *entry.UserID); err == nil {
				entry.Actor = &domain.ActorRef{Name: user.Name, Email: user.Email}
			}
		}
		result = append(result, entry)
	}
	return result, nil
}
