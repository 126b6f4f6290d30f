package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enquiry-service/internal/domain"
)

// ActivityRepository stores the append-only assignment audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	ListByEnquiry(ctx context.Context, enquiryID string) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (action, enquiry_id, user_id, details)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.Action,
		entry.EnquiryID,
		entry.UserID,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) ListByEnquiry(ctx context.Context, enquiryID string) ([]domain.ActivityEntry, error) {
	const query = `
        SELECT l.id, l.action, l.enquiry_id, l.user_id, l.details, l.created_at,
               u.name, u.email
        FROM activity_log l
        LEFT JOIN users u ON u.id = l.user_id
        WHERE l.enquiry_id=$1 ORDER BY l.created_at DESC`
	rows, err := r.pool.Query(ctx, query, enquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityEntry
	for rows.Next() {
		var (
			entry                 domain.ActivityEntry
			actorName, actorEmail *string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.EnquiryID,
			&entry.UserID,
			&entry.Details,
			&entry.CreatedAt,
			&actorName,
			&actorEmail,
		); err != nil {
			return nil, err
		}
		if actorName != nil {
			entry.Actor = &domain.ActorRef{Name: *actorName, Email: *actorEmail}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
