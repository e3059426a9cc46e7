package dto

import (
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/rollup"
)

// SubordinateResponse annotates one direct subordinate.
type SubordinateResponse struct {
	PersonID     string           `json:"person_id"`
	Name         string           `json:"name"`
	Label        string           `json:"label"`
	Tier         domain.RoleTier  `json:"tier"`
	AccountCount int              `json:"account_count"`
	LastActivity *time.Time       `json:"last_activity"`
	Staleness    rollup.Staleness `json:"staleness"`
}

// UnassignedPeopleResponse lists people with no resolvable parent.
type UnassignedPeopleResponse struct {
	PersonIDs []string `json:"person_ids"`
}

// UnassignedAccountsResponse lists in-scope accounts not delegated onward.
type UnassignedAccountsResponse struct {
	PersonID   string   `json:"person_id"`
	AccountIDs []string `json:"account_ids"`
}

// PotentialResponse is a market potential figure.
type PotentialResponse struct {
	Potential float64 `json:"potential"`
}
