package domain

import (
	"errors"
	"time"
)

// RoleTier enumerates hierarchy tiers. Admin is a Person flag, not a tier.
type RoleTier string

const (
	RoleTierRep     RoleTier = "rep"
	RoleTierManager RoleTier = "manager"
	RoleTierVp      RoleTier = "vp"
)

// DefaultLabel is the tier label shown when no custom label is set.
func (t RoleTier) DefaultLabel() string {
	switch t {
	case RoleTierRep:
		return "Sales Rep"
	case RoleTierManager:
		return "Manager"
	case RoleTierVp:
		return "VP"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known tier.
func (t RoleTier) Valid() bool {
	switch t {
	case RoleTierRep, RoleTierManager, RoleTierVp:
		return true
	}
	return false
}

// HierarchyAssignment is one row of the hierarchy relation. A person may own
// several rows (a manager reporting to multiple VPs, a VP covering multiple
// regions) but every row for one person carries the same tier.
type HierarchyAssignment struct {
	ID          string
	PersonID    string
	Tier        RoleTier
	ParentID    *string
	RegionID    *string
	CustomLabel string
	CreatedAt   time.Time
}

var (
	// ErrMixedTiers is returned when rows for one person disagree on tier.
	ErrMixedTiers = errors.New("hierarchy rows for one person must share a single tier")
	// ErrManagerNeedsVp is returned when a manager profile names no VP parent.
	ErrManagerNeedsVp = errors.New("manager requires at least one VP parent")
)

// RoleProfile is the closed set of role shapes a person can hold. Exactly one
// of the variant pointers is non-nil; the zero profile means the person is not
// in the hierarchy. The shape makes tier homogeneity and manager multi-parent
// structural rather than convention.
type RoleProfile struct {
	Rep     *RepProfile
	Manager *ManagerProfile
	Vp      *VpProfile
}

// RepProfile: one optional manager parent. Nil parent means unassigned rep.
type RepProfile struct {
	ManagerID   *string
	CustomLabel string
}

// ManagerProfile: one row per VP parent, at least one required.
type ManagerProfile struct {
	VpIDs       []string
	CustomLabel string
}

// VpProfile: no parent, zero or more regions (one row per region).
type VpProfile struct {
	RegionIDs   []string
	CustomLabel string
}

// Tier returns the tier of the set variant, or "" for the zero profile.
func (p RoleProfile) Tier() RoleTier {
	switch {
	case p.Rep != nil:
		return RoleTierRep
	case p.Manager != nil:
		return RoleTierManager
	case p.Vp != nil:
		return RoleTierVp
	default:
		return ""
	}
}

// Validate checks variant exclusivity and per-variant rules.
func (p RoleProfile) Validate() error {
	set := 0
	if p.Rep != nil {
		set++
	}
	if p.Manager != nil {
		set++
	}
	if p.Vp != nil {
		set++
	}
	if set != 1 {
		return ErrMixedTiers
	}
	if p.Manager != nil && len(p.Manager.VpIDs) == 0 {
		return ErrManagerNeedsVp
	}
	return nil
}

// Rows expands the profile into the HierarchyAssignment rows that represent
// it. Edits replace a person's rows wholesale, so this is the only path from
// profile to storage shape.
func (p RoleProfile) Rows(personID string) ([]HierarchyAssignment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch {
	case p.Rep != nil:
		return []HierarchyAssignment{{
			PersonID:    personID,
			Tier:        RoleTierRep,
			ParentID:    p.Rep.ManagerID,
			CustomLabel: p.Rep.CustomLabel,
		}}, nil
	case p.Manager != nil:
		rows := make([]HierarchyAssignment, 0, len(p.Manager.VpIDs))
		for _, vpID := range p.Manager.VpIDs {
			parent := vpID
			rows = append(rows, HierarchyAssignment{
				PersonID:    personID,
				Tier:        RoleTierManager,
				ParentID:    &parent,
				CustomLabel: p.Manager.CustomLabel,
			})
		}
		return rows, nil
	default:
		if len(p.Vp.RegionIDs) == 0 {
			return []HierarchyAssignment{{
				PersonID:    personID,
				Tier:        RoleTierVp,
				CustomLabel: p.Vp.CustomLabel,
			}}, nil
		}
		rows := make([]HierarchyAssignment, 0, len(p.Vp.RegionIDs))
		for _, regionID := range p.Vp.RegionIDs {
			region := regionID
			rows = append(rows, HierarchyAssignment{
				PersonID:    personID,
				Tier:        RoleTierVp,
				RegionID:    &region,
				CustomLabel: p.Vp.CustomLabel,
			})
		}
		return rows, nil
	}
}

// ProfileFromRows folds a person's stored rows back into a profile. Returns
// ErrMixedTiers when rows disagree on tier.
func ProfileFromRows(rows []HierarchyAssignment) (RoleProfile, error) {
	if len(rows) == 0 {
		return RoleProfile{}, nil
	}
	tier := rows[0].Tier
	for _, row := range rows[1:] {
		if row.Tier != tier {
			return RoleProfile{}, ErrMixedTiers
		}
	}
	label := rows[0].CustomLabel
	switch tier {
	case RoleTierRep:
		return RoleProfile{Rep: &RepProfile{ManagerID: rows[0].ParentID, CustomLabel: label}}, nil
	case RoleTierManager:
		vpIDs := make([]string, 0, len(rows))
		for _, row := range rows {
			if row.ParentID != nil {
				vpIDs = append(vpIDs, *row.ParentID)
			}
		}
		return RoleProfile{Manager: &ManagerProfile{VpIDs: vpIDs, CustomLabel: label}}, nil
	case RoleTierVp:
		regionIDs := make([]string, 0, len(rows))
		for _, row := range rows {
			if row.RegionID != nil {
				regionIDs = append(regionIDs, *row.RegionID)
			}
		}
		return RoleProfile{Vp: &VpProfile{RegionIDs: regionIDs, CustomLabel: label}}, nil
	default:
		return RoleProfile{}, ErrMixedTiers
	}
}
