package dto

import (
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// AssignmentResponse is one hierarchy row.
type AssignmentResponse struct {
	ID          string          `json:"id"`
	PersonID    string          `json:"person_id"`
	Tier        domain.RoleTier `json:"tier"`
	ParentID    *string         `json:"parent_id"`
	RegionID    *string         `json:"region_id"`
	CustomLabel string          `json:"custom_label,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AssignRoleRequest replaces a person's role wholesale. Exactly one of the
// tier shapes applies, selected by the tier field.
type AssignRoleRequest struct {
	Tier        domain.RoleTier `json:"tier"`
	ManagerID   *string         `json:"manager_id,omitempty"`
	VpIDs       []string        `json:"vp_ids,omitempty"`
	RegionIDs   []string        `json:"region_ids,omitempty"`
	CustomLabel string          `json:"custom_label,omitempty"`
}

// SetTierRequest promotes or demotes a person, clearing their parent.
type SetTierRequest struct {
	Tier domain.RoleTier `json:"tier"`
}

// ProfileResponse is a person's folded role.
type ProfileResponse struct {
	PersonID    string          `json:"person_id"`
	Tier        domain.RoleTier `json:"tier,omitempty"`
	ManagerID   *string         `json:"manager_id,omitempty"`
	VpIDs       []string        `json:"vp_ids,omitempty"`
	RegionIDs   []string        `json:"region_ids,omitempty"`
	CustomLabel string          `json:"custom_label,omitempty"`
}

// RemoveImpactResponse is the blast radius shown before removal.
type RemoveImpactResponse struct {
	PersonID         string `json:"person_id"`
	DelegationCount  int    `json:"delegation_count"`
	SubordinateCount int    `json:"subordinate_count"`
}

// BreadcrumbsResponse is the root-first trail above a person.
type BreadcrumbsResponse struct {
	PersonID string   `json:"person_id"`
	Trail    []string `json:"trail"`
}
