package events

import (
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoleAssigned         EventType = "role_assigned"
	EventPersonRemoved        EventType = "person_removed"
	EventAccountsDelegated    EventType = "accounts_delegated"
	EventAccountsUnassigned   EventType = "accounts_unassigned"
	EventContentStatusChanged EventType = "content_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoleAssignedPayload payload.
type RoleAssignedPayload struct {
	PersonID  string          `json:"person_id"`
	Tier      domain.RoleTier `json:"tier"`
	ParentIDs []string        `json:"parent_ids,omitempty"`
	RegionIDs []string        `json:"region_ids,omitempty"`
}

// PersonRemovedPayload payload.
type PersonRemovedPayload struct {
	PersonID         string `json:"person_id"`
	DelegationCount  int    `json:"delegation_count"`
	SubordinateCount int    `json:"subordinate_count"`
}

// AccountsDelegatedPayload payload.
type AccountsDelegatedPayload struct {
	AccountIDs []string `json:"account_ids"`
	ToPersonID string   `json:"to_person_id"`
}

// AccountsUnassignedPayload payload.
type AccountsUnassignedPayload struct {
	AccountIDs   []string `json:"account_ids"`
	FromPersonID string   `json:"from_person_id"`
}

// ContentStatusChangedPayload payload.
type ContentStatusChangedPayload struct {
	ContentID string               `json:"content_id"`
	VideoID   string               `json:"video_id"`
	Title     string               `json:"title"`
	OldStatus domain.ContentStatus `json:"old_status"`
	NewStatus domain.ContentStatus `json:"new_status"`
}
