package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/events"
	"github.com/spec-kit/field-intel-service/internal/reorg"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// RemoveImpact is the computed blast radius of removing a person from the
// hierarchy, shown before the destructive call is allowed.
type RemoveImpact struct {
	DelegationCount  int
	SubordinateCount int
}

// HierarchyService owns role placement: validation, replace semantics,
// removal with impact confirmation, and move-plan application.
type HierarchyService struct {
	hierarchy   repository.HierarchyRepository
	delegations repository.DelegationRepository
	persons     repository.PersonRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// HierarchyDependencies bundles repositories.
type HierarchyDependencies struct {
	HierarchyRepo  repository.HierarchyRepository
	DelegationRepo repository.DelegationRepository
	PersonRepo     repository.PersonRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewHierarchyService creates the service.
func NewHierarchyService(deps HierarchyDependencies) *HierarchyService {
	return &HierarchyService{
		hierarchy:   deps.HierarchyRepo,
		delegations: deps.DelegationRepo,
		persons:     deps.PersonRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// ListAssignments returns every hierarchy row; callers index by person.
func (s *HierarchyService) ListAssignments(ctx context.Context) ([]domain.HierarchyAssignment, error) {
	rows, err := s.hierarchy.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// GetProfile folds a person's rows into their role profile.
func (s *HierarchyService) GetProfile(ctx context.Context, personID string) (domain.RoleProfile, error) {
	rows, err := s.hierarchy.ListForPerson(ctx, personID)
	if err != nil {
		return domain.RoleProfile{}, apperrors.MapError(err)
	}
	profile, err := domain.ProfileFromRows(rows)
	if err != nil {
		return domain.RoleProfile{}, apperrors.NewConflict(err.Error(), map[string]any{"person_id": personID})
	}
	return profile, nil
}

// AssignRole replaces a person's hierarchy rows with the given profile. Every
// edit is a full replace; there is no partial-update path.
func (s *HierarchyService) AssignRole(ctx context.Context, actorID, personID string, profile domain.RoleProfile) error {
	if _, err := s.persons.GetByID(ctx, personID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("person", map[string]any{"person_id": personID})
		}
		return apperrors.MapError(err)
	}

	rows, err := profile.Rows(personID)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"person_id": personID})
	}

	if err := s.replaceRows(ctx, personID, rows); err != nil {
		return err
	}

	payload := events.RoleAssignedPayload{PersonID: personID, Tier: profile.Tier()}
	if profile.Manager != nil {
		payload.ParentIDs = profile.Manager.VpIDs
	}
	if profile.Rep != nil && profile.Rep.ManagerID != nil {
		payload.ParentIDs = []string{*profile.Rep.ManagerID}
	}
	if profile.Vp != nil {
		payload.RegionIDs = profile.Vp.RegionIDs
	}
	s.publish(ctx, actorID, events.EventRoleAssigned, payload)
	return nil
}

// ComputeRemoveImpact runs the two impact reads that must precede removal:
// accounts delegated to the person, and people whose parent pointer names
// them. This is not a database cascade.
func (s *HierarchyService) ComputeRemoveImpact(ctx context.Context, personID string) (RemoveImpact, error) {
	delegationCount, err := s.delegations.CountToPerson(ctx, personID)
	if err != nil {
		return RemoveImpact{}, apperrors.MapError(err)
	}
	subordinateCount, err := s.hierarchy.CountByParent(ctx, personID)
	if err != nil {
		return RemoveImpact{}, apperrors.MapError(err)
	}
	return RemoveImpact{DelegationCount: delegationCount, SubordinateCount: subordinateCount}, nil
}

// RemovePerson deletes a person's hierarchy rows after an explicit
// confirmation. Subordinates keep their rows; their parent pointers dangle
// and the person surfaces in the unassigned pool.
func (s *HierarchyService) RemovePerson(ctx context.Context, actorID, personID string, confirmed bool) error {
	impact, err := s.ComputeRemoveImpact(ctx, personID)
	if err != nil {
		return err
	}
	if !confirmed {
		return apperrors.NewConflict("confirmation required before removal", map[string]any{
			"person_id":         personID,
			"delegation_count":  impact.DelegationCount,
			"subordinate_count": impact.SubordinateCount,
		})
	}

	if err := s.hierarchy.RemoveForPerson(ctx, personID); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.EventPersonRemoved, events.PersonRemovedPayload{
		PersonID:         personID,
		DelegationCount:  impact.DelegationCount,
		SubordinateCount: impact.SubordinateCount,
	})
	return nil
}

// SetTier promotes or demotes a person: a full replace with the new tier and
// a cleared parent and region. The caller re-picks a parent afterwards;
// delegated accounts and subordinates do not move.
func (s *HierarchyService) SetTier(ctx context.Context, actorID, personID string, tier domain.RoleTier) error {
	if !tier.Valid() {
		return apperrors.NewValidationError("unknown role tier", map[string]any{"tier": string(tier)})
	}

	rows, err := s.hierarchy.ListForPerson(ctx, personID)
	if err != nil {
		return apperrors.MapError(err)
	}
	label := ""
	if len(rows) > 0 {
		label = rows[0].CustomLabel
	}

	replacement := []domain.HierarchyAssignment{{PersonID: personID, Tier: tier, CustomLabel: label}}
	if err := s.replaceRows(ctx, personID, replacement); err != nil {
		return err
	}

	s.publish(ctx, actorID, events.EventRoleAssigned, events.RoleAssignedPayload{PersonID: personID, Tier: tier})
	return nil
}

// ApplyMove commits a resolved reorganization plan. A detach plan clears the
// direct subordinates' parents first; a manager's own downstream delegations
// are deliberately left untouched.
func (s *HierarchyService) ApplyMove(ctx context.Context, actorID string, plan reorg.MovePlan) error {
	if plan.DetachSubordinates {
		for _, subID := range plan.SubordinateIDs {
			if err := s.clearParent(ctx, subID); err != nil {
				return err
			}
		}
	}

	if plan.Unassign {
		return s.clearParent(ctx, plan.PersonID)
	}

	var profile domain.RoleProfile
	switch plan.NewTier {
	case domain.RoleTierRep:
		profile = domain.RoleProfile{Rep: &domain.RepProfile{ManagerID: plan.NewParentID}}
	case domain.RoleTierManager:
		if plan.NewParentID == nil {
			return apperrors.NewValidationError("manager move requires a VP target", nil)
		}
		profile = domain.RoleProfile{Manager: &domain.ManagerProfile{VpIDs: []string{*plan.NewParentID}}}
	default:
		return apperrors.NewValidationError("unsupported move target", map[string]any{"tier": string(plan.NewTier)})
	}

	// Preserve the mover's custom label across the replace.
	existing, err := s.hierarchy.ListForPerson(ctx, plan.PersonID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(existing) > 0 {
		label := existing[0].CustomLabel
		if profile.Rep != nil {
			profile.Rep.CustomLabel = label
		}
		if profile.Manager != nil {
			profile.Manager.CustomLabel = label
		}
	}

	return s.AssignRole(ctx, actorID, plan.PersonID, profile)
}

// clearParent replaces a person's rows with a single parentless row of the
// same tier (the "unassigned" shape).
func (s *HierarchyService) clearParent(ctx context.Context, personID string) error {
	rows, err := s.hierarchy.ListForPerson(ctx, personID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(rows) == 0 {
		return nil
	}

	replacement := []domain.HierarchyAssignment{{
		PersonID:    personID,
		Tier:        rows[0].Tier,
		CustomLabel: rows[0].CustomLabel,
	}}
	return s.replaceRows(ctx, personID, replacement)
}

func (s *HierarchyService) replaceRows(ctx context.Context, personID string, rows []domain.HierarchyAssignment) error {
	if err := s.hierarchy.ReplaceForPerson(ctx, personID, rows); err != nil {
		var replaceErr *repository.ReplaceError
		if errors.As(err, &replaceErr) && replaceErr.Phase == repository.ReplacePhaseInsert {
			// The delete already committed: the person is now unassigned,
			// not restored to their previous rows.
			s.logger.Error("assignment replace half applied; person left unassigned",
				zap.String("person_id", personID), zap.Error(err))
			return apperrors.NewPartialFailure("replace hierarchy assignments", 0, len(rows), err)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *HierarchyService) publish(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
