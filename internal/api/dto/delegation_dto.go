package dto

import "time"

// DelegateAccountsRequest payload for assign and unassign.
type DelegateAccountsRequest struct {
	AccountIDs []string `json:"account_ids"`
	PersonID   string   `json:"person_id"`
}

// ReassignAccountsRequest payload.
type ReassignAccountsRequest struct {
	AccountIDs   []string `json:"account_ids"`
	FromPersonID string   `json:"from_person_id"`
	ToPersonID   string   `json:"to_person_id"`
}

// BulkResultResponse reports how much of a batched write committed.
type BulkResultResponse struct {
	Applied int `json:"applied"`
	Total   int `json:"total"`
}

// ReassignResponse reports both phases of a reassign.
type ReassignResponse struct {
	Unassigned BulkResultResponse `json:"unassigned"`
	Assigned   BulkResultResponse `json:"assigned"`
}

// DelegationResponse is one delegation edge.
type DelegationResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	DelegatedTo string    `json:"delegated_to"`
	DelegatedBy string    `json:"delegated_by"`
	CreatedAt   time.Time `json:"created_at"`
}
