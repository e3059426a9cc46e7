package domain

import "time"

// Surgeon is the account entity being delegated. Specialty/location attributes
// are carried for filtering and rollups only.
type Surgeon struct {
	ID        string
	Name      string
	Specialty string
	City      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SurgeonRegion ties an account to a region, scoping a VP territory before
// any further delegation down the tree.
type SurgeonRegion struct {
	SurgeonID string
	RegionID  string
}

// ProcedureVolume is one CPT/procedure row for an account.
type ProcedureVolume struct {
	ID           string
	SurgeonID    string
	CPTCode      string
	AnnualVolume int64
}

// CPTPrice is the average reimbursement price for a CPT code.
type CPTPrice struct {
	CPTCode      string
	AveragePrice float64
}
