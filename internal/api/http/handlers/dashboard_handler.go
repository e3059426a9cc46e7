package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/service"
)

// DashboardHandler serves derived rollup views. Everything here is computed
// from a fresh snapshot per request.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Subordinates GET /dashboard/:personId/subordinates.
func (h *DashboardHandler) Subordinates(c *fiber.Ctx) error {
	entries, err := h.service.Subordinates(c.Context(), c.Params("personId"))
	if err != nil {
		return err
	}
	items := make([]dto.SubordinateResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.SubordinateResponse{
			PersonID:     entry.PersonID,
			Name:         entry.Name,
			Label:        entry.Label,
			Tier:         entry.Tier,
			AccountCount: entry.AccountCount,
			LastActivity: entry.LastActivity,
			Staleness:    entry.Staleness,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// UnassignedPeople GET /dashboard/unassigned-people.
func (h *DashboardHandler) UnassignedPeople(c *fiber.Ctx) error {
	personIDs, err := h.service.UnassignedPeople(c.Context())
	if err != nil {
		return err
	}
	if personIDs == nil {
		personIDs = []string{}
	}
	return c.JSON(fiber.Map{"data": dto.UnassignedPeopleResponse{PersonIDs: personIDs}})
}

// UnassignedAccounts GET /dashboard/:personId/unassigned-accounts.
func (h *DashboardHandler) UnassignedAccounts(c *fiber.Ctx) error {
	personID := c.Params("personId")
	accountIDs, err := h.service.UnassignedAccounts(c.Context(), personID)
	if err != nil {
		return err
	}
	if accountIDs == nil {
		accountIDs = []string{}
	}
	return c.JSON(fiber.Map{"data": dto.UnassignedAccountsResponse{PersonID: personID, AccountIDs: accountIDs}})
}

// AccountPotential GET /dashboard/accounts/:accountId/potential.
func (h *DashboardHandler) AccountPotential(c *fiber.Ctx) error {
	potential, err := h.service.AccountPotential(c.Context(), c.Params("accountId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PotentialResponse{Potential: potential}})
}

// ScopePotential GET /dashboard/:personId/potential.
func (h *DashboardHandler) ScopePotential(c *fiber.Ctx) error {
	potential, err := h.service.ScopePotential(c.Context(), c.Params("personId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PotentialResponse{Potential: potential}})
}
