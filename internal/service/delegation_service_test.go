package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

func newDelegationService(d *fakeDelegationRepo) *DelegationService {
	return NewDelegationService(DelegationDependencies{
		DelegationRepo: d,
		HierarchyRepo:  &fakeHierarchyRepo{},
		Logger:         zap.NewNop(),
	})
}

func TestDelegationAssignValidation(t *testing.T) {
	svc := newDelegationService(&fakeDelegationRepo{})

	_, err := svc.Assign(context.Background(), nil, "rep1", "admin")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.Assign(context.Background(), []string{"acc1"}, "", "admin")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestDelegationAssignPartialFailure(t *testing.T) {
	delegations := &fakeDelegationRepo{
		assignFn: func(ctx context.Context, accountIDs []string, toPersonID, actorID string) (repository.BulkResult, error) {
			// Second batch failed; the first committed and stays committed.
			return repository.BulkResult{Applied: 500, Total: len(accountIDs)}, errors.New("batch 2 failed")
		},
	}
	svc := newDelegationService(delegations)

	accountIDs := make([]string, 750)
	for i := range accountIDs {
		accountIDs[i] = "acc"
	}

	result, err := svc.Assign(context.Background(), accountIDs, "rep1", "admin")
	require.Error(t, err)
	require.Equal(t, 500, result.Applied)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "PARTIAL_FAILURE", domainErr.Code)
	require.Equal(t, 500, domainErr.Details["applied"])
	require.Equal(t, 750, domainErr.Details["total"])
}

func TestDelegationReassignLostState(t *testing.T) {
	unassignCalled := false
	delegations := &fakeDelegationRepo{
		unassignFn: func(ctx context.Context, accountIDs []string, fromPersonID, actorID string) (repository.BulkResult, error) {
			unassignCalled = true
			return repository.BulkResult{Applied: len(accountIDs), Total: len(accountIDs)}, nil
		},
		assignFn: func(ctx context.Context, accountIDs []string, toPersonID, actorID string) (repository.BulkResult, error) {
			return repository.BulkResult{Applied: 0, Total: len(accountIDs)}, errors.New("assign failed")
		},
	}
	svc := newDelegationService(delegations)

	result, err := svc.Reassign(context.Background(), []string{"acc1", "acc2"}, "rep1", "rep2", "admin")
	require.Error(t, err)
	require.True(t, unassignCalled)

	// Unassign committed; assign applied nothing. The accounts sit with
	// nobody until retried, and the result says exactly that.
	require.Equal(t, 2, result.Unassigned.Applied)
	require.Equal(t, 0, result.Assigned.Applied)
	require.Equal(t, "PARTIAL_FAILURE", apperrors.ToDomainError(err).Code)
}

func TestDelegationReassignSuccess(t *testing.T) {
	svc := newDelegationService(&fakeDelegationRepo{})

	result, err := svc.Reassign(context.Background(), []string{"acc1"}, "rep1", "rep2", "admin")
	require.NoError(t, err)
	require.Equal(t, 1, result.Unassigned.Applied)
	require.Equal(t, 1, result.Assigned.Applied)
}

func TestDelegationUnassignPassesActor(t *testing.T) {
	var gotFrom, gotActor string
	delegations := &fakeDelegationRepo{
		unassignFn: func(ctx context.Context, accountIDs []string, fromPersonID, actorID string) (repository.BulkResult, error) {
			gotFrom, gotActor = fromPersonID, actorID
			return repository.BulkResult{Applied: len(accountIDs), Total: len(accountIDs)}, nil
		},
	}
	svc := newDelegationService(delegations)

	_, err := svc.Unassign(context.Background(), []string{"acc1"}, "rep1", "mgr1")
	require.NoError(t, err)

	// Unassign is keyed by delegator: only the actor's own edges come off.
	require.Equal(t, "rep1", gotFrom)
	require.Equal(t, "mgr1", gotActor)
}
