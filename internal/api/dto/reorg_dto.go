package dto

import "github.com/spec-kit/field-intel-service/internal/domain"

// DropRequest resolves one drag-and-drop gesture against the hierarchy.
type DropRequest struct {
	PersonID       string          `json:"person_id"`
	Tier           domain.RoleTier `json:"tier"`
	Assigned       bool            `json:"assigned"`
	SubordinateIDs []string        `json:"subordinate_ids"`
	Target         DropTarget      `json:"target"`
}

// DropTarget is where the person was dropped.
type DropTarget struct {
	Kind     string `json:"kind"`
	PersonID string `json:"person_id,omitempty"`
}

// MovePlanResponse is the resolved store mutation, echoed back on commit.
type MovePlanResponse struct {
	PersonID           string          `json:"person_id"`
	NewTier            domain.RoleTier `json:"new_tier,omitempty"`
	NewParentID        *string         `json:"new_parent_id,omitempty"`
	Unassign           bool            `json:"unassign"`
	DetachSubordinates bool            `json:"detach_subordinates"`
	SubordinateIDs     []string        `json:"subordinate_ids,omitempty"`
}

// DropResponse reports whether the drop is valid and whether it needs an
// explicit confirmation before commit.
type DropResponse struct {
	Valid                bool              `json:"valid"`
	NoOp                 bool              `json:"no_op"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	SubordinateCount     int               `json:"subordinate_count,omitempty"`
	Plan                 *MovePlanResponse `json:"plan,omitempty"`
}

// CommitRequest applies a resolved plan.
type CommitRequest struct {
	Plan             MovePlanResponse `json:"plan"`
	KeepSubordinates bool             `json:"keep_subordinates"`
}
