package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/repository"
	"github.com/spec-kit/field-intel-service/internal/service"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// DelegationHandler manages account delegation endpoints.
type DelegationHandler struct {
	service *service.DelegationService
}

// NewDelegationHandler constructs handler.
func NewDelegationHandler(delegationService *service.DelegationService) *DelegationHandler {
	return &DelegationHandler{service: delegationService}
}

// ListTo GET /delegations/to/:personId.
func (h *DelegationHandler) ListTo(c *fiber.Ctx) error {
	rows, err := h.service.ListTo(c.Context(), c.Params("personId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": delegationResponses(rows)})
}

// ListBy GET /delegations/by/:personId.
func (h *DelegationHandler) ListBy(c *fiber.Ctx) error {
	rows, err := h.service.ListBy(c.Context(), c.Params("personId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": delegationResponses(rows)})
}

// Assign POST /delegations/assign.
func (h *DelegationHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.DelegateAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Assign(c.Context(), req.AccountIDs, req.PersonID, principal.Person.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bulkResultResponse(result)})
}

// Unassign POST /delegations/unassign.
func (h *DelegationHandler) Unassign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.DelegateAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Unassign(c.Context(), req.AccountIDs, req.PersonID, principal.Person.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bulkResultResponse(result)})
}

// Reassign POST /delegations/reassign.
func (h *DelegationHandler) Reassign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.ReassignAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Reassign(c.Context(), req.AccountIDs, req.FromPersonID, req.ToPersonID, principal.Person.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReassignResponse{
		Unassigned: bulkResultResponse(result.Unassigned),
		Assigned:   bulkResultResponse(result.Assigned),
	}})
}

func bulkResultResponse(result repository.BulkResult) dto.BulkResultResponse {
	return dto.BulkResultResponse{Applied: result.Applied, Total: result.Total}
}

func delegationResponses(rows []domain.AccountDelegation) []dto.DelegationResponse {
	items := make([]dto.DelegationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.DelegationResponse{
			ID:          row.ID,
			AccountID:   row.AccountID,
			DelegatedTo: row.DelegatedTo,
			DelegatedBy: row.DelegatedBy,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items
}
