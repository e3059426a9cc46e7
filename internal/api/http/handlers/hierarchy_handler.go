package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/service"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// HierarchyHandler manages role placement endpoints.
type HierarchyHandler struct {
	hierarchyService *service.HierarchyService
	dashboardService *service.DashboardService
}

// NewHierarchyHandler constructs handler.
func NewHierarchyHandler(hierarchyService *service.HierarchyService, dashboardService *service.DashboardService) *HierarchyHandler {
	return &HierarchyHandler{hierarchyService: hierarchyService, dashboardService: dashboardService}
}

// ListAssignments GET /hierarchy.
func (h *HierarchyHandler) ListAssignments(c *fiber.Ctx) error {
	rows, err := h.hierarchyService.ListAssignments(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, assignmentResponse(row))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProfile GET /hierarchy/:personId.
func (h *HierarchyHandler) GetProfile(c *fiber.Ctx) error {
	personID := c.Params("personId")
	profile, err := h.hierarchyService.GetProfile(c.Context(), personID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(personID, profile)})
}

// AssignRole PUT /hierarchy/:personId.
func (h *HierarchyHandler) AssignRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := profileFromRequest(req)
	if err != nil {
		return err
	}
	if err := h.hierarchyService.AssignRole(c.Context(), principal.Person.ID, c.Params("personId"), profile); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetTier POST /hierarchy/:personId/tier.
func (h *HierarchyHandler) SetTier(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.SetTierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.hierarchyService.SetTier(c.Context(), principal.Person.ID, c.Params("personId"), req.Tier); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveImpact GET /hierarchy/:personId/impact.
func (h *HierarchyHandler) RemoveImpact(c *fiber.Ctx) error {
	personID := c.Params("personId")
	impact, err := h.hierarchyService.ComputeRemoveImpact(c.Context(), personID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RemoveImpactResponse{
		PersonID:         personID,
		DelegationCount:  impact.DelegationCount,
		SubordinateCount: impact.SubordinateCount,
	}})
}

// RemovePerson DELETE /hierarchy/:personId. Requires confirm=true; without it
// the impact counts come back in a conflict response instead.
func (h *HierarchyHandler) RemovePerson(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.hierarchyService.RemovePerson(c.Context(), principal.Person.ID, c.Params("personId"), confirmed); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Breadcrumbs GET /hierarchy/:personId/breadcrumbs.
func (h *HierarchyHandler) Breadcrumbs(c *fiber.Ctx) error {
	personID := c.Params("personId")
	trail, err := h.dashboardService.Breadcrumbs(c.Context(), personID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BreadcrumbsResponse{PersonID: personID, Trail: trail}})
}

func profileFromRequest(req dto.AssignRoleRequest) (domain.RoleProfile, error) {
	switch req.Tier {
	case domain.RoleTierRep:
		return domain.RoleProfile{Rep: &domain.RepProfile{
			ManagerID:   req.ManagerID,
			CustomLabel: req.CustomLabel,
		}}, nil
	case domain.RoleTierManager:
		return domain.RoleProfile{Manager: &domain.ManagerProfile{
			VpIDs:       req.VpIDs,
			CustomLabel: req.CustomLabel,
		}}, nil
	case domain.RoleTierVp:
		return domain.RoleProfile{Vp: &domain.VpProfile{
			RegionIDs:   req.RegionIDs,
			CustomLabel: req.CustomLabel,
		}}, nil
	default:
		return domain.RoleProfile{}, apperrors.NewValidationError("unknown role tier", map[string]any{"tier": string(req.Tier)})
	}
}

func profileResponse(personID string, profile domain.RoleProfile) dto.ProfileResponse {
	resp := dto.ProfileResponse{PersonID: personID, Tier: profile.Tier()}
	switch {
	case profile.Rep != nil:
		resp.ManagerID = profile.Rep.ManagerID
		resp.CustomLabel = profile.Rep.CustomLabel
	case profile.Manager != nil:
		resp.VpIDs = profile.Manager.VpIDs
		resp.CustomLabel = profile.Manager.CustomLabel
	case profile.Vp != nil:
		resp.RegionIDs = profile.Vp.RegionIDs
		resp.CustomLabel = profile.Vp.CustomLabel
	}
	return resp
}

func assignmentResponse(row domain.HierarchyAssignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:          row.ID,
		PersonID:    row.PersonID,
		Tier:        row.Tier,
		ParentID:    row.ParentID,
		RegionID:    row.RegionID,
		CustomLabel: row.CustomLabel,
		CreatedAt:   row.CreatedAt,
	}
}
