package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enquiry-service/internal/auth"
	"github.com/spec-kit/enquiry-service/internal/config"
	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/repository"
	apperrors "github.com/spec-kit/enquiry-service/pkg/util"
)

// UserService implements admin-only account management. Deleting a user
// never touches enquiries or activity entries that reference it.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// UserListInput describes listing parameters.
type UserListInput struct {
	Search    *string
	Role      *string
	SortField string
	SortAsc   bool
	Page      int
	Limit     int
}

// UserPage is one page of accounts plus paging metadata.
type UserPage struct {
	Items []domain.User
	Total int
	Page  int
	Pages int
}

// UserUpdateInput describes a partial update; nil fields are untouched. An
// empty password is treated as absent.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// List returns a filtered, paginated account page.
func (s *UserService) List(ctx context.Context, input UserListInput) (*UserPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repository.UserFilter{
		Search:    input.Search,
		SortField: input.SortField,
		SortAsc:   input.SortAsc,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		filter.Role = &role
	}

	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	items, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.User{}
	}

	return &UserPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Create adds an account, hashing the password before persisting.
func (s *UserService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleStaff
	}

	details := map[string]any{}
	if !validName(name) {
		details["name"] = "must be at least 2 characters"
	}
	if !validEmail(email) {
		details["email"] = "must be a valid email address"
	}
	if !validPassword(password) {
		details["password"] = "must be at least 6 characters"
	}
	if !domain.ValidRole(role) {
		details["role"] = "must be admin or staff"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already in use", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update overwrites provided fields only and re-hashes the password when one
// is supplied.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	details := map[string]any{}
	if input.Name != nil && !validName(*input.Name) {
		details["name"] = "must be at least 2 characters"
	}
	if input.Email != nil && !validEmail(*input.Email) {
		details["email"] = "must be a valid email address"
	}
	if input.Password != nil && *input.Password != "" && !validPassword(*input.Password) {
		details["password"] = "must be at least 6 characters"
	}
	if input.Role != nil && !domain.ValidRole(domain.Role(*input.Role)) {
		details["role"] = "must be admin or staff"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = domain.Role(*input.Role)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete hard-deletes an account, leaving any references dangling.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetByID returns a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
