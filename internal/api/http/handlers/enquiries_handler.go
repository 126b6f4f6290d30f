package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enquiry-service/internal/api/dto"
	"github.com/spec-kit/enquiry-service/internal/auth"
	"github.com/spec-kit/enquiry-service/internal/service"
	apperrors "github.com/spec-kit/enquiry-service/pkg/util"
)

// EnquiriesHandler manages enquiry endpoints.
type EnquiriesHandler struct {
	enquiries   *service.EnquiryService
	assignments *service.AssignmentService
	stats       *service.StatsService
}

// NewEnquiriesHandler constructs handler.
func NewEnquiriesHandler(enquiries *service.EnquiryService, assignments *service.AssignmentService, stats *service.StatsService) *EnquiriesHandler {
	return &EnquiriesHandler{enquiries: enquiries, assignments: assignments, stats: stats}
}

// Create handles POST /enquiries.
func (h *EnquiriesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.CreateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	enquiry, err := h.enquiries.Create(c.Context(), principal.ID, service.EnquiryCreateInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Enquiry created successfully", dto.NewEnquiryResponse(enquiry))
}

// List handles GET /enquiries.
func (h *EnquiriesHandler) List(c *fiber.Ctx) error {
	page, err := h.enquiries.List(c.Context(), parseEnquiryQuery(c))
	if err != nil {
		return err
	}

	items := make([]dto.EnquiryResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.NewEnquiryResponse(&page.Items[i]))
	}
	return respond(c, http.StatusOK, "Enquiries fetched successfully", dto.EnquiryListData{
		Enquiries: items,
		Total:     page.Total,
		Page:      page.Page,
		Pages:     page.Pages,
	})
}

// Get handles GET /enquiries/:id.
func (h *EnquiriesHandler) Get(c *fiber.Ctx) error {
	enquiry, err := h.enquiries.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Enquiry fetched successfully", dto.NewEnquiryResponse(enquiry))
}

// Update handles PUT /enquiries/:id.
func (h *EnquiriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	enquiry, err := h.enquiries.Update(c.Context(), c.Params("id"), service.EnquiryUpdateInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		Status:       req.Status,
		AssignedTo:   req.AssignedTo,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Enquiry updated successfully", dto.NewEnquiryResponse(enquiry))
}

// Delete handles DELETE /enquiries/:id.
func (h *EnquiriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.enquiries.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Enquiry deleted successfully", nil)
}

// Stats handles GET /enquiries/stats.
func (h *EnquiriesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.Stats(c.Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Stats fetched successfully", dto.StatsData{
		Total:      stats.Total,
		New:        stats.New,
		InProgress: stats.InProgress,
		Closed:     stats.Closed,
		Recent:     stats.Recent,
		Last7Days:  stats.Last7Days,
	})
}

// Assign handles PUT /enquiries/:id/assign.
func (h *EnquiriesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	enquiry, err := h.assignments.Assign(c.Context(), principal.ID, c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}

	message := "Enquiry assigned successfully"
	if req.AssignedTo == nil || *req.AssignedTo == "" {
		message = "Enquiry unassigned"
	}
	return respond(c, http.StatusOK, message, dto.NewEnquiryResponse(enquiry))
}

// Activity handles GET /enquiries/:id/activity.
func (h *EnquiriesHandler) Activity(c *fiber.Ctx) error {
	entries, err := h.assignments.Activity(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewActivityResponse(&entries[i]))
	}
	return respond(c, http.StatusOK, "Activity logs fetched", items)
}

// parseEnquiryQuery reads the recognized filter options; anything else in
// the query string is ignored.
func parseEnquiryQuery(c *fiber.Ctx) service.EnquiryListInput {
	input := service.EnquiryListInput{
		Page:    parseIntDefault(c.Query("page"), 1),
		Limit:   parseIntDefault(c.Query("limit"), 10),
		SortAsc: c.Query("sort") == "asc",
	}
	if v := c.Query("status"); v != "" {
		input.Status = &v
	}
	if v := c.Query("assignedTo"); v != "" {
		input.AssignedTo = &v
	}
	if v := c.Query("createdBy"); v != "" {
		input.CreatedBy = &v
	}
	if v := c.Query("search"); v != "" {
		input.Search = &v
	}
	return input
}

func parseIntDefault(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
