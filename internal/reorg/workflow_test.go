package reorg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

func TestResolveDrop(t *testing.T) {
	cases := []struct {
		name      string
		candidate Candidate
		target    Target
		ok        bool
		wantNil   bool
		wantTier  domain.RoleTier
		unassign  bool
	}{
		{
			name:      "rep dropped on vp promotes to manager",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierRep, Assigned: true},
			target:    Target{Kind: TargetVp, PersonID: "vp1"},
			ok:        true, wantTier: domain.RoleTierManager,
		},
		{
			name:      "manager dropped on vp stays manager",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierManager, Assigned: true},
			target:    Target{Kind: TargetVp, PersonID: "vp1"},
			ok:        true, wantTier: domain.RoleTierManager,
		},
		{
			name:      "tierless dropped on vp becomes manager",
			candidate: Candidate{PersonID: "p1"},
			target:    Target{Kind: TargetVp, PersonID: "vp1"},
			ok:        true, wantTier: domain.RoleTierManager,
		},
		{
			name:      "vp dropped on vp is invalid",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierVp, Assigned: true},
			target:    Target{Kind: TargetVp, PersonID: "vp2"},
			ok:        false,
		},
		{
			name:      "rep dropped on manager stays rep",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierRep, Assigned: true},
			target:    Target{Kind: TargetManager, PersonID: "m1"},
			ok:        true, wantTier: domain.RoleTierRep,
		},
		{
			name:      "tierless dropped on manager becomes rep",
			candidate: Candidate{PersonID: "p1"},
			target:    Target{Kind: TargetManager, PersonID: "m1"},
			ok:        true, wantTier: domain.RoleTierRep,
		},
		{
			name:      "manager dropped on manager is invalid",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierManager, Assigned: true},
			target:    Target{Kind: TargetManager, PersonID: "m1"},
			ok:        false,
		},
		{
			name:      "vp dropped on manager is invalid",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierVp, Assigned: true},
			target:    Target{Kind: TargetManager, PersonID: "m1"},
			ok:        false,
		},
		{
			name:      "assigned dropped on unassigned zone",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierRep, Assigned: true},
			target:    Target{Kind: TargetUnassigned},
			ok:        true, wantTier: domain.RoleTierRep, unassign: true,
		},
		{
			name:      "unassigned dropped on unassigned zone is a no-op",
			candidate: Candidate{PersonID: "p1", Tier: domain.RoleTierRep},
			target:    Target{Kind: TargetUnassigned},
			ok:        true, wantNil: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, ok := ResolveDrop(&tc.candidate, &tc.target)
			require.Equal(t, tc.ok, ok)
			if !ok || tc.wantNil {
				require.Nil(t, plan)
				return
			}
			require.Equal(t, tc.candidate.PersonID, plan.PersonID)
			require.Equal(t, tc.wantTier, plan.NewTier)
			require.Equal(t, tc.unassign, plan.Unassign)
			if !tc.unassign {
				require.NotNil(t, plan.NewParentID)
				require.Equal(t, tc.target.PersonID, *plan.NewParentID)
			}
		})
	}
}

func TestTransitionCommitWithoutConfirmation(t *testing.T) {
	candidate := &Candidate{PersonID: "rep1", Tier: domain.RoleTierRep, Assigned: true}

	state, effect := Transition(Idle(), Event{Kind: EventPickUp, Candidate: candidate})
	require.Equal(t, PhaseDragging, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)

	state, effect = Transition(state, Event{Kind: EventDrop, Target: &Target{Kind: TargetManager, PersonID: "m1"}})
	require.Equal(t, PhaseCommitting, state.Phase)
	require.Equal(t, EffectCommit, effect.Kind)
	require.NotNil(t, effect.Plan)
	require.False(t, effect.Plan.DetachSubordinates)

	state, effect = Transition(state, Event{Kind: EventCommitResult})
	require.Equal(t, PhaseIdle, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)
}

func TestTransitionConfirmationGate(t *testing.T) {
	candidate := &Candidate{
		PersonID:       "mgr1",
		Tier:           domain.RoleTierManager,
		Assigned:       true,
		SubordinateIDs: []string{"rep1", "rep2"},
	}

	state, _ := Transition(Idle(), Event{Kind: EventPickUp, Candidate: candidate})
	state, effect := Transition(state, Event{Kind: EventDrop, Target: &Target{Kind: TargetVp, PersonID: "vp2"}})

	require.Equal(t, PhaseAwaitingConfirm, state.Phase)
	require.Equal(t, EffectAskConfirm, effect.Kind)
	require.Equal(t, 2, effect.Impact.SubordinateCount)

	// Confirm, detaching subordinates.
	detached, effect := Transition(state, Event{Kind: EventConfirm})
	require.Equal(t, PhaseCommitting, detached.Phase)
	require.Equal(t, EffectCommit, effect.Kind)
	require.True(t, effect.Plan.DetachSubordinates)

	// Confirm, keeping subordinates attached.
	kept, effect := Transition(state, Event{Kind: EventConfirm, KeepSubordinates: true})
	require.Equal(t, PhaseCommitting, kept.Phase)
	require.False(t, effect.Plan.DetachSubordinates)
}

func TestTransitionCancel(t *testing.T) {
	candidate := &Candidate{
		PersonID:       "mgr1",
		Tier:           domain.RoleTierManager,
		Assigned:       true,
		SubordinateIDs: []string{"rep1"},
	}

	state, _ := Transition(Idle(), Event{Kind: EventPickUp, Candidate: candidate})
	state, _ = Transition(state, Event{Kind: EventDrop, Target: &Target{Kind: TargetVp, PersonID: "vp2"}})
	require.Equal(t, PhaseAwaitingConfirm, state.Phase)

	state, effect := Transition(state, Event{Kind: EventCancel})
	require.Equal(t, PhaseIdle, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)
	require.Nil(t, state.Plan)
}

func TestTransitionInvalidDropReturnsToIdle(t *testing.T) {
	candidate := &Candidate{PersonID: "vp1", Tier: domain.RoleTierVp, Assigned: true}

	state, _ := Transition(Idle(), Event{Kind: EventPickUp, Candidate: candidate})
	state, effect := Transition(state, Event{Kind: EventDrop, Target: &Target{Kind: TargetManager, PersonID: "m1"}})

	require.Equal(t, PhaseIdle, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)
}

func TestTransitionIgnoresOutOfPhaseEvents(t *testing.T) {
	state, effect := Transition(Idle(), Event{Kind: EventDrop, Target: &Target{Kind: TargetVp, PersonID: "vp1"}})
	require.Equal(t, PhaseIdle, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)

	state, effect = Transition(Idle(), Event{Kind: EventConfirm})
	require.Equal(t, PhaseIdle, state.Phase)
	require.Equal(t, EffectNone, effect.Kind)
}
