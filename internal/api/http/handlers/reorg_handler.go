package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/reorg"
	"github.com/spec-kit/field-intel-service/internal/service"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// ReorgHandler drives the drag-and-drop reorganization workflow over HTTP.
// Drop resolution is pure; only commit touches the stores.
type ReorgHandler struct {
	hierarchyService *service.HierarchyService
}

// NewReorgHandler constructs handler.
func NewReorgHandler(hierarchyService *service.HierarchyService) *ReorgHandler {
	return &ReorgHandler{hierarchyService: hierarchyService}
}

// ResolveDrop POST /reorg/drop. Runs the pick-up and drop transitions and
// reports whether the gesture is valid and whether it needs confirmation.
func (h *ReorgHandler) ResolveDrop(c *fiber.Ctx) error {
	var req dto.DropRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PersonID == "" {
		return apperrors.NewValidationError("person_id required", nil)
	}
	targetKind := reorg.TargetKind(req.Target.Kind)
	switch targetKind {
	case reorg.TargetVp, reorg.TargetManager, reorg.TargetUnassigned:
	default:
		return apperrors.NewValidationError("unknown drop target kind", map[string]any{"kind": req.Target.Kind})
	}

	candidate := &reorg.Candidate{
		PersonID:       req.PersonID,
		Tier:           req.Tier,
		Assigned:       req.Assigned,
		SubordinateIDs: req.SubordinateIDs,
	}
	target := &reorg.Target{Kind: targetKind, PersonID: req.Target.PersonID}

	state, _ := reorg.Transition(reorg.Idle(), reorg.Event{Kind: reorg.EventPickUp, Candidate: candidate})
	state, effect := reorg.Transition(state, reorg.Event{Kind: reorg.EventDrop, Target: target})

	switch effect.Kind {
	case reorg.EffectAskConfirm:
		return c.JSON(fiber.Map{"data": dto.DropResponse{
			Valid:                true,
			RequiresConfirmation: true,
			SubordinateCount:     effect.Impact.SubordinateCount,
			Plan:                 movePlanResponse(state.Plan),
		}})
	case reorg.EffectCommit:
		return c.JSON(fiber.Map{"data": dto.DropResponse{
			Valid: true,
			Plan:  movePlanResponse(effect.Plan),
		}})
	default:
		// Either an invalid pairing or a no-op (unassigned person dropped on
		// the unassigned zone). Both land back in idle with no plan.
		plan, ok := reorg.ResolveDrop(candidate, target)
		return c.JSON(fiber.Map{"data": dto.DropResponse{
			Valid: ok,
			NoOp:  ok && plan == nil,
		}})
	}
}

// Commit POST /reorg/commit. Applies a resolved plan to the hierarchy store.
func (h *ReorgHandler) Commit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.CommitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Plan.PersonID == "" {
		return apperrors.NewValidationError("plan.person_id required", nil)
	}

	plan := reorg.MovePlan{
		PersonID:           req.Plan.PersonID,
		NewTier:            req.Plan.NewTier,
		NewParentID:        req.Plan.NewParentID,
		Unassign:           req.Plan.Unassign,
		DetachSubordinates: req.Plan.DetachSubordinates,
		SubordinateIDs:     req.Plan.SubordinateIDs,
	}
	if len(plan.SubordinateIDs) > 0 {
		plan.DetachSubordinates = !req.KeepSubordinates
	}

	if err := h.hierarchyService.ApplyMove(c.Context(), principal.Person.ID, plan); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func movePlanResponse(plan *reorg.MovePlan) *dto.MovePlanResponse {
	if plan == nil {
		return nil
	}
	return &dto.MovePlanResponse{
		PersonID:           plan.PersonID,
		NewTier:            plan.NewTier,
		NewParentID:        plan.NewParentID,
		Unassign:           plan.Unassign,
		DetachSubordinates: plan.DetachSubordinates,
		SubordinateIDs:     plan.SubordinateIDs,
	}
}
