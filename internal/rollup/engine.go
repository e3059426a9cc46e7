package rollup

import (
	"errors"
	"sort"
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// Staleness buckets a person or account by days since last call activity.
type Staleness string

const (
	StalenessFresh      Staleness = "fresh"
	StalenessWarning    Staleness = "warning"
	StalenessStale      Staleness = "stale"
	StalenessNoActivity Staleness = "no_activity"
)

// Fixed thresholds in days, shared by every dashboard.
const (
	stalenessWarningDays = 7
	stalenessStaleDays   = 14
)

// ErrHierarchyCycle is returned when the breadcrumb walk trips its guard.
// Given the invariants a cycle should never exist; if one does, it is
// surfaced, never silently truncated.
var ErrHierarchyCycle = errors.New("cycle detected in hierarchy parent chain")

// Classify maps a last-activity timestamp to a staleness bucket. A nil
// timestamp means no recorded activity at all.
func Classify(lastCall *time.Time, now time.Time) Staleness {
	if lastCall == nil {
		return StalenessNoActivity
	}
	days := int(now.Sub(*lastCall).Hours() / 24)
	switch {
	case days < stalenessWarningDays:
		return StalenessFresh
	case days < stalenessStaleDays:
		return StalenessWarning
	default:
		return StalenessStale
	}
}

// SubordinateEntry annotates one direct subordinate for a rollup view.
type SubordinateEntry struct {
	PersonID     string
	Name         string
	Label        string
	Tier         domain.RoleTier
	AccountCount int
	LastActivity *time.Time
	Staleness    Staleness
}

// SubordinateRollup lists the people one level below the given person, each
// annotated with delegated-account count, label and last call activity.
func SubordinateRollup(s *Snapshot, personID string, now time.Time) []SubordinateEntry {
	counts := s.delegationCountByPerson()

	seen := make(map[string]struct{})
	var entries []SubordinateEntry
	for _, a := range s.Assignments {
		if a.ParentID == nil || *a.ParentID != personID {
			continue
		}
		if _, dup := seen[a.PersonID]; dup {
			continue
		}
		seen[a.PersonID] = struct{}{}

		label := a.CustomLabel
		if label == "" {
			label = a.Tier.DefaultLabel()
		}
		entry := SubordinateEntry{
			PersonID:     a.PersonID,
			Name:         s.personName(a.PersonID),
			Label:        label,
			Tier:         a.Tier,
			AccountCount: counts[a.PersonID],
		}
		if last, ok := s.LastCalls[a.PersonID]; ok {
			lastCopy := last
			entry.LastActivity = &lastCopy
		}
		entry.Staleness = Classify(entry.LastActivity, now)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// UnassignedPeople returns people holding a rep or manager tier whose rows
// all fail to resolve to an active parent: never assigned, or orphaned by a
// parent's removal. VPs are excluded; parentless is their normal state.
func UnassignedPeople(s *Snapshot) []string {
	active := s.activePersons()

	var unassigned []string
	for personID, rows := range s.assignmentsByPerson() {
		if rows[0].Tier == domain.RoleTierVp {
			continue
		}
		attached := false
		for _, row := range rows {
			if row.ParentID == nil {
				continue
			}
			if _, ok := active[*row.ParentID]; ok {
				attached = true
				break
			}
		}
		if !attached {
			unassigned = append(unassigned, personID)
		}
	}

	sort.Strings(unassigned)
	return unassigned
}

// ScopeAccounts returns the account ids in scope for a person: region
// membership for a VP, inbound delegations for a manager or rep.
func ScopeAccounts(s *Snapshot, personID string) []string {
	byPerson := s.assignmentsByPerson()
	rows := byPerson[personID]

	idSet := make(map[string]struct{})
	if len(rows) > 0 && rows[0].Tier == domain.RoleTierVp {
		regions := make(map[string]struct{})
		for _, row := range rows {
			if row.RegionID != nil {
				regions[*row.RegionID] = struct{}{}
			}
		}
		for _, link := range s.RegionLinks {
			if _, ok := regions[link.RegionID]; ok {
				idSet[link.SurgeonID] = struct{}{}
			}
		}
	} else {
		for _, d := range s.Delegations {
			if d.DelegatedTo == personID {
				idSet[d.AccountID] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UnassignedAccounts is the set difference between a person's scope and the
// accounts they have delegated onward. Computed fresh on every call, never
// stored.
func UnassignedAccounts(s *Snapshot, personID string) []string {
	delegatedOn := make(map[string]struct{})
	for _, d := range s.Delegations {
		if d.DelegatedBy == personID {
			delegatedOn[d.AccountID] = struct{}{}
		}
	}

	var remaining []string
	for _, id := range ScopeAccounts(s, personID) {
		if _, ok := delegatedOn[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	return remaining
}

// MarketPotential sums annual_volume × average_price over an account's
// procedure rows. Codes with no price contribute zero.
func MarketPotential(s *Snapshot, accountID string) float64 {
	prices := s.priceByCPT()

	var total float64
	for _, p := range s.Procedures {
		if p.SurgeonID != accountID {
			continue
		}
		total += float64(p.AnnualVolume) * prices[p.CPTCode]
	}
	return total
}

// ScopePotential sums market potential over every account in a person's
// scope. O(accounts × procedures); recomputed per view by design.
func ScopePotential(s *Snapshot, personID string) float64 {
	inScope := make(map[string]struct{})
	for _, id := range ScopeAccounts(s, personID) {
		inScope[id] = struct{}{}
	}

	prices := s.priceByCPT()
	var total float64
	for _, p := range s.Procedures {
		if _, ok := inScope[p.SurgeonID]; !ok {
			continue
		}
		total += float64(p.AnnualVolume) * prices[p.CPTCode]
	}
	return total
}

// Breadcrumbs walks parent pointers upward from a person and returns the
// trail root-first. The walk stops at a parentless person, or at the first
// row carrying a region (the region name becomes the top crumb). The walk is
// bounded by a visited set and the number of distinct persons; exceeding the
// bound returns ErrHierarchyCycle.
func Breadcrumbs(s *Snapshot, personID string) ([]string, error) {
	byPerson := s.assignmentsByPerson()
	maxSteps := len(byPerson)

	visited := make(map[string]struct{})
	var trail []string

	current := personID
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			return nil, ErrHierarchyCycle
		}
		if _, ok := visited[current]; ok {
			return nil, ErrHierarchyCycle
		}
		visited[current] = struct{}{}

		trail = append([]string{s.personName(current)}, trail...)

		rows := byPerson[current]
		if len(rows) == 0 {
			return trail, nil
		}
		row := rows[0]
		if row.RegionID != nil {
			if region, ok := s.Regions[*row.RegionID]; ok {
				trail = append([]string{region.Name}, trail...)
			}
			return trail, nil
		}
		if row.ParentID == nil {
			return trail, nil
		}
		current = *row.ParentID
	}
}
