package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/events"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// ReassignResult reports both phases of a reassign. The phases are separate
// writes with no transaction across them; when the assign phase fails the
// accounts sit delegated to nobody until the caller retries.
type ReassignResult struct {
	Unassigned repository.BulkResult
	Assigned   repository.BulkResult
}

// DelegationService owns account delegation writes.
type DelegationService struct {
	delegations repository.DelegationRepository
	hierarchy   repository.HierarchyRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// DelegationDependencies bundles repositories.
type DelegationDependencies struct {
	DelegationRepo repository.DelegationRepository
	HierarchyRepo  repository.HierarchyRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewDelegationService creates the service.
func NewDelegationService(deps DelegationDependencies) *DelegationService {
	return &DelegationService{
		delegations: deps.DelegationRepo,
		hierarchy:   deps.HierarchyRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// ListTo returns the delegations held by a person.
func (s *DelegationService) ListTo(ctx context.Context, personID string) ([]domain.AccountDelegation, error) {
	rows, err := s.delegations.ListToPerson(ctx, personID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// ListBy returns the delegations a person has made.
func (s *DelegationService) ListBy(ctx context.Context, delegatorID string) ([]domain.AccountDelegation, error) {
	rows, err := s.delegations.ListByDelegator(ctx, delegatorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// Assign delegates accounts to a person. Batched; the first batch error
// aborts with earlier batches committed, surfaced as a partial failure.
func (s *DelegationService) Assign(ctx context.Context, accountIDs []string, toPersonID, actorID string) (repository.BulkResult, error) {
	if len(accountIDs) == 0 {
		return repository.BulkResult{}, apperrors.NewValidationError("no accounts selected", nil)
	}
	if toPersonID == "" {
		return repository.BulkResult{}, apperrors.NewValidationError("target person required", nil)
	}

	result, err := s.delegations.Assign(ctx, accountIDs, toPersonID, actorID)
	if err != nil {
		return result, apperrors.NewPartialFailure("delegate accounts", result.Applied, result.Total, err)
	}

	s.publish(ctx, actorID, events.EventAccountsDelegated, events.AccountsDelegatedPayload{
		AccountIDs: accountIDs,
		ToPersonID: toPersonID,
	})
	return result, nil
}

// Unassign removes delegations made by the actor to a person.
func (s *DelegationService) Unassign(ctx context.Context, accountIDs []string, fromPersonID, actorID string) (repository.BulkResult, error) {
	if len(accountIDs) == 0 {
		return repository.BulkResult{}, apperrors.NewValidationError("no accounts selected", nil)
	}

	result, err := s.delegations.Unassign(ctx, accountIDs, fromPersonID, actorID)
	if err != nil {
		return result, apperrors.NewPartialFailure("unassign accounts", result.Applied, result.Total, err)
	}

	s.publish(ctx, actorID, events.EventAccountsUnassigned, events.AccountsUnassignedPayload{
		AccountIDs:   accountIDs,
		FromPersonID: fromPersonID,
	})
	return result, nil
}

// Reassign is unassign-then-assign. A failure in the assign phase after a
// successful unassign leaves the accounts in neither state; this is reported,
// not rolled back, and the caller retries.
func (s *DelegationService) Reassign(ctx context.Context, accountIDs []string, fromPersonID, toPersonID, actorID string) (ReassignResult, error) {
	result := ReassignResult{}

	unassigned, err := s.delegations.Unassign(ctx, accountIDs, fromPersonID, actorID)
	result.Unassigned = unassigned
	if err != nil {
		return result, apperrors.NewPartialFailure("reassign accounts (unassign phase)", unassigned.Applied, unassigned.Total, err)
	}

	assigned, err := s.delegations.Assign(ctx, accountIDs, toPersonID, actorID)
	result.Assigned = assigned
	if err != nil {
		s.logger.Error("reassign lost accounts: unassign committed but assign failed",
			zap.String("from", fromPersonID),
			zap.String("to", toPersonID),
			zap.Int("applied", assigned.Applied),
			zap.Int("total", assigned.Total),
			zap.Error(err))
		return result, apperrors.NewPartialFailure("reassign accounts (assign phase)", assigned.Applied, assigned.Total, err)
	}

	s.publish(ctx, actorID, events.EventAccountsDelegated, events.AccountsDelegatedPayload{
		AccountIDs: accountIDs,
		ToPersonID: toPersonID,
	})
	return result, nil
}

func (s *DelegationService) publish(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
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
