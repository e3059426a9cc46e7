package reorg

import (
	"github.com/spec-kit/field-intel-service/internal/domain"
)

// Phase enumerates workflow states.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseDragging        Phase = "dragging"
	PhaseAwaitingConfirm Phase = "awaiting_confirm"
	PhaseCommitting      Phase = "committing"
)

// TargetKind is the shape of a drop target.
type TargetKind string

const (
	TargetVp         TargetKind = "vp"
	TargetManager    TargetKind = "manager"
	TargetUnassigned TargetKind = "unassigned"
)

// EventKind enumerates workflow inputs.
type EventKind string

const (
	EventPickUp       EventKind = "pick_up"
	EventDrop         EventKind = "drop"
	EventCancel       EventKind = "cancel"
	EventConfirm      EventKind = "confirm"
	EventCommitResult EventKind = "commit_result"
)

// EffectKind enumerates the side effects the caller must perform after a
// transition. Nothing mutates the stores until an EffectCommit.
type EffectKind string

const (
	EffectNone       EffectKind = "none"
	EffectAskConfirm EffectKind = "ask_confirm"
	EffectCommit     EffectKind = "commit"
)

// Candidate is the person being dragged, with enough context to resolve the
// drop without further reads.
type Candidate struct {
	PersonID       string
	Tier           domain.RoleTier // "" when the person holds no assignment
	Assigned       bool
	SubordinateIDs []string
}

// Target is where the candidate was dropped.
type Target struct {
	Kind     TargetKind
	PersonID string // vp/manager target person; empty for the unassigned zone
}

// MovePlan is the store mutation a successful drop resolves to.
type MovePlan struct {
	PersonID           string
	NewTier            domain.RoleTier
	NewParentID        *string
	Unassign           bool
	DetachSubordinates bool
	SubordinateIDs     []string
}

// Impact is shown in the confirmation prompt for movers with subordinates.
type Impact struct {
	SubordinateCount int
}

// Event is one workflow input.
type Event struct {
	Kind             EventKind
	Candidate        *Candidate // EventPickUp
	Target           *Target    // EventDrop
	KeepSubordinates bool       // EventConfirm
	Err              error      // EventCommitResult
}

// Effect tells the caller what to do after a transition.
type Effect struct {
	Kind   EffectKind
	Plan   *MovePlan
	Impact *Impact
}

// State is the full workflow state. The zero value is not valid; use Idle.
type State struct {
	Phase     Phase
	Candidate *Candidate
	Plan      *MovePlan
}

// Idle returns the initial state.
func Idle() State {
	return State{Phase: PhaseIdle}
}

// ResolveDrop maps a (candidate, target) pair to a move plan. The second
// return is false for invalid pairs. A nil plan with ok=true is a no-op drop
// (unassigned person on the unassigned zone).
func ResolveDrop(c *Candidate, t *Target) (*MovePlan, bool) {
	switch t.Kind {
	case TargetUnassigned:
		if !c.Assigned {
			return nil, true
		}
		return &MovePlan{
			PersonID:       c.PersonID,
			NewTier:        c.Tier,
			Unassign:       true,
			SubordinateIDs: c.SubordinateIDs,
		}, true

	case TargetVp:
		parent := t.PersonID
		switch c.Tier {
		case domain.RoleTierRep:
			// Promotion via move: a rep landing directly under a VP
			// becomes a manager.
			return &MovePlan{
				PersonID:       c.PersonID,
				NewTier:        domain.RoleTierManager,
				NewParentID:    &parent,
				SubordinateIDs: c.SubordinateIDs,
			}, true
		case domain.RoleTierManager:
			return &MovePlan{
				PersonID:       c.PersonID,
				NewTier:        domain.RoleTierManager,
				NewParentID:    &parent,
				SubordinateIDs: c.SubordinateIDs,
			}, true
		case "":
			return &MovePlan{
				PersonID:    c.PersonID,
				NewTier:     domain.RoleTierManager,
				NewParentID: &parent,
			}, true
		default:
			return nil, false
		}

	case TargetManager:
		parent := t.PersonID
		switch c.Tier {
		case domain.RoleTierRep:
			return &MovePlan{
				PersonID:       c.PersonID,
				NewTier:        domain.RoleTierRep,
				NewParentID:    &parent,
				SubordinateIDs: c.SubordinateIDs,
			}, true
		case "":
			return &MovePlan{
				PersonID:    c.PersonID,
				NewTier:     domain.RoleTierRep,
				NewParentID: &parent,
			}, true
		default:
			return nil, false
		}
	}
	return nil, false
}

// needsConfirmation gates moves of managers/VPs who currently have
// subordinates. The store tolerates dangling parents, so this workflow is
// the only guard.
func needsConfirmation(c *Candidate) bool {
	if c == nil || len(c.SubordinateIDs) == 0 {
		return false
	}
	return c.Tier == domain.RoleTierManager || c.Tier == domain.RoleTierVp
}

// Transition applies one event to the workflow. Unknown or out-of-phase
// events leave the state unchanged with no effect.
func Transition(state State, event Event) (State, Effect) {
	none := Effect{Kind: EffectNone}

	switch state.Phase {
	case PhaseIdle:
		if event.Kind == EventPickUp && event.Candidate != nil {
			return State{Phase: PhaseDragging, Candidate: event.Candidate}, none
		}

	case PhaseDragging:
		switch event.Kind {
		case EventCancel:
			return Idle(), none
		case EventDrop:
			if event.Target == nil {
				return Idle(), none
			}
			plan, ok := ResolveDrop(state.Candidate, event.Target)
			if !ok || plan == nil {
				return Idle(), none
			}
			if needsConfirmation(state.Candidate) {
				return State{Phase: PhaseAwaitingConfirm, Candidate: state.Candidate, Plan: plan},
					Effect{Kind: EffectAskConfirm, Impact: &Impact{SubordinateCount: len(state.Candidate.SubordinateIDs)}}
			}
			return State{Phase: PhaseCommitting, Candidate: state.Candidate, Plan: plan},
				Effect{Kind: EffectCommit, Plan: plan}
		}

	case PhaseAwaitingConfirm:
		switch event.Kind {
		case EventCancel:
			// Closing the prompt before commit is the only cancellation
			// the system supports; no request is ever issued.
			return Idle(), none
		case EventConfirm:
			plan := *state.Plan
			plan.DetachSubordinates = !event.KeepSubordinates
			return State{Phase: PhaseCommitting, Candidate: state.Candidate, Plan: &plan},
				Effect{Kind: EffectCommit, Plan: &plan}
		}

	case PhaseCommitting:
		if event.Kind == EventCommitResult {
			return Idle(), none
		}
	}

	return state, none
}
