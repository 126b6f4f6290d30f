package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enquiry-service/internal/domain"
)

// EnquiryFilter captures listing parameters.
type EnquiryFilter struct {
	Status     *domain.EnquiryStatus
	AssignedTo *string
	CreatedBy  *string
	Search     *string
	SortAsc    bool
	Limit      int
	Offset     int
}

// RecentEnquiry is the projection returned for the dashboard recent list.
type RecentEnquiry struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customerName"`
	Email        string               `json:"email"`
	Status       domain.EnquiryStatus `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// DayCount is one calendar-day bucket of created enquiries.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EnquiryRepository encapsulates enquiry persistence.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) error
	Update(ctx context.Context, enquiry *domain.Enquiry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	List(ctx context.Context, filter EnquiryFilter) ([]domain.Enquiry, error)
	Count(ctx context.Context, filter EnquiryFilter) (int, error)
	CountByStatus(ctx context.Context, status *domain.EnquiryStatus) (int, error)
	ListRecent(ctx context.Context, limit int) ([]RecentEnquiry, error)
	CountByDaySince(ctx context.Context, since time.Time) ([]DayCount, error)
}

type enquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository instantiates repository.
func NewEnquiryRepository(pool *pgxpool.Pool) EnquiryRepository {
	return &enquiryRepository{pool: pool}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	const query = `
        INSERT INTO enquiries (customer_name, email, phone, message, status, assigned_to, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		enquiry.CustomerName,
		enquiry.Email,
		enquiry.Phone,
		enquiry.Message,
		enquiry.Status,
		enquiry.AssignedToID,
		enquiry.CreatedByID,
	).Scan(&enquiry.ID, &enquiry.CreatedAt, &enquiry.UpdatedAt)
}

func (r *enquiryRepository) Update(ctx context.Context, enquiry *domain.Enquiry) error {
	const query = `
        UPDATE enquiries SET customer_name=$1, email=$2, phone=$3, message=$4,
            status=$5, assigned_to=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		enquiry.CustomerName,
		enquiry.Email,
		enquiry.Phone,
		enquiry.Message,
		enquiry.Status,
		enquiry.AssignedToID,
		enquiry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enquiryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// selectWithRefs expands assigned_to and created_by into user projections.
// LEFT JOINs keep enquiries readable after a referenced user is deleted.
const selectWithRefs = `
    SELECT e.id, e.customer_name, e.email, e.phone, e.message, e.status,
           e.assigned_to, e.created_by, e.created_at, e.updated_at,
           a.id, a.name, a.email, a.role,
           c.id, c.name, c.email, c.role
    FROM enquiries e
    LEFT JOIN users a ON a.id = e.assigned_to
    LEFT JOIN users c ON c.id = e.created_by`

func (r *enquiryRepository) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	query := selectWithRefs + " WHERE e.id=$1"
	row := r.pool.QueryRow(ctx, query, id)
	enquiry, err := scanEnquiry(row)
	if err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (r *enquiryRepository) List(ctx context.Context, filter EnquiryFilter) ([]domain.Enquiry, error) {
	clauses, args := enquiryFilterClauses(filter)

	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY e.created_at %s LIMIT %d OFFSET %d",
		selectWithRefs, strings.Join(clauses, " AND "), direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Enquiry
	for rows.Next() {
		enquiry, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *enquiry)
	}
	return result, rows.Err()
}

func (r *enquiryRepository) Count(ctx context.Context, filter EnquiryFilter) (int, error) {
	clauses, args := enquiryFilterClauses(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM enquiries e WHERE %s", strings.Join(clauses, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *enquiryRepository) CountByStatus(ctx context.Context, status *domain.EnquiryStatus) (int, error) {
	var total int
	if status == nil {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enquiries`).Scan(&total)
		return total, err
	}
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enquiries WHERE status=$1`, *status).Scan(&total)
	return total, err
}

func (r *enquiryRepository) ListRecent(ctx context.Context, limit int) ([]RecentEnquiry, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`
        SELECT id, customer_name, email, status, created_at
        FROM enquiries ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentEnquiry
	for rows.Next() {
		var recent RecentEnquiry
		if err := rows.Scan(
			&recent.ID,
			&recent.CustomerName,
			&recent.Email,
			&recent.Status,
			&recent.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, recent)
	}
	return result, rows.Err()
}

func (r *enquiryRepository) CountByDaySince(ctx context.Context, since time.Time) ([]DayCount, error) {
	const query = `
        SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*)
        FROM enquiries WHERE created_at >= $1
        GROUP BY day ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DayCount
	for rows.Next() {
		var bucket DayCount
		if err := rows.Scan(&bucket.Date, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func enquiryFilterClauses(filter EnquiryFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("e.status=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("e.assigned_to=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("e.created_by=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(e.customer_name) LIKE %s OR LOWER(e.email) LIKE %s)", placeholder, placeholder))
	}
	return clauses, args
}

func scanEnquiry(row pgx.Row) (*domain.Enquiry, error) {
	var (
		enquiry                                 domain.Enquiry
		assigneeID, assigneeName, assigneeEmail *string
		assigneeRole                            *domain.Role
		creatorID, creatorName, creatorEmail    *string
		creatorRole                             *domain.Role
	)
	if err := row.Scan(
		&enquiry.ID,
		&enquiry.CustomerName,
		&enquiry.Email,
		&enquiry.Phone,
		&enquiry.Message,
		&enquiry.Status,
		&enquiry.AssignedToID,
		&enquiry.CreatedByID,
		&enquiry.CreatedAt,
		&enquiry.UpdatedAt,
		&assigneeID, &assigneeName, &assigneeEmail, &assigneeRole,
		&creatorID, &creatorName, &creatorEmail, &creatorRole,
	); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		enquiry.AssignedTo = &domain.UserRef{ID: *assigneeID, Name: *assigneeName, Email: *assigneeEmail, Role: *assigneeRole}
	}
	if creatorID != nil {
		enquiry.CreatedBy = &domain.UserRef{ID: *creatorID, Name: *creatorName, Email: *creatorEmail, Role: *creatorRole}
	}
	return &enquiry, nil
}
