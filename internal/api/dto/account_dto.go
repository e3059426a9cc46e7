package dto

import (
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// AccountResponse is one account with its custom field values.
type AccountResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Specialty    string               `json:"specialty"`
	City         string               `json:"city"`
	State        string               `json:"state"`
	CustomFields []FieldValueResponse `json:"custom_fields"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ImportAccountsRequest carries pre-parsed spreadsheet rows. Parsing the
// spreadsheet itself happens upstream.
type ImportAccountsRequest struct {
	Accounts   []ImportAccountRow   `json:"accounts"`
	Procedures []ImportProcedureRow `json:"procedures"`
}

// ImportAccountRow is one account row of an import.
type ImportAccountRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	City      string `json:"city"`
	State     string `json:"state"`
}

// ImportProcedureRow is one CPT volume row of an import.
type ImportProcedureRow struct {
	SurgeonID    string `json:"surgeon_id"`
	CPTCode      string `json:"cpt_code"`
	AnnualVolume int64  `json:"annual_volume"`
}

// ImportResponse reports how much of each phase committed.
type ImportResponse struct {
	Accounts   BulkResultResponse `json:"accounts"`
	Procedures BulkResultResponse `json:"procedures"`
}

// LogCallRequest payload.
type LogCallRequest struct {
	CalledAt *time.Time `json:"called_at,omitempty"`
	Notes    string     `json:"notes"`
}

// CallLogResponse is one call activity row.
type CallLogResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	LoggedBy  string    `json:"logged_by"`
	CalledAt  time.Time `json:"called_at"`
	Notes     string    `json:"notes"`
}

// CreateFieldRequest defines a custom field.
type CreateFieldRequest struct {
	Name     string                 `json:"name"`
	Type     domain.CustomFieldType `json:"type"`
	Options  []string               `json:"options,omitempty"`
	Position int                    `json:"position"`
}

// FieldResponse is one custom field definition.
type FieldResponse struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Type     domain.CustomFieldType `json:"type"`
	Options  []string               `json:"options,omitempty"`
	Position int                    `json:"position"`
}

// SetFieldValueRequest payload.
type SetFieldValueRequest struct {
	Value string `json:"value"`
}

// FieldValueResponse is one field/value pair on an account.
type FieldValueResponse struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
}

// RegionResponse is one region.
type RegionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateRegionRequest payload.
type CreateRegionRequest struct {
	Name string `json:"name"`
}
