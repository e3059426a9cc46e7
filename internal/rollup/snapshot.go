package rollup

import (
	"time"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

// Snapshot is an immutable read of every relation the rollup engine derives
// from. It is rebuilt on every dashboard load; the engine never patches it
// incrementally, so derived views are always consistent with the reads that
// produced them (and carry no transactional guarantee across those reads).
type Snapshot struct {
	Assignments []domain.HierarchyAssignment
	Delegations []domain.AccountDelegation
	Surgeons    []domain.Surgeon
	RegionLinks []domain.SurgeonRegion
	Procedures  []domain.ProcedureVolume
	Prices      []domain.CPTPrice
	LastCalls   map[string]time.Time
	People      map[string]domain.Person
	Regions     map[string]domain.Region
}

// assignmentsByPerson groups rows by owning person.
func (s *Snapshot) assignmentsByPerson() map[string][]domain.HierarchyAssignment {
	grouped := make(map[string][]domain.HierarchyAssignment)
	for _, a := range s.Assignments {
		grouped[a.PersonID] = append(grouped[a.PersonID], a)
	}
	return grouped
}

// activePersons is the set of person ids holding at least one assignment row.
func (s *Snapshot) activePersons() map[string]struct{} {
	active := make(map[string]struct{}, len(s.Assignments))
	for _, a := range s.Assignments {
		active[a.PersonID] = struct{}{}
	}
	return active
}

// delegationCountByPerson counts distinct accounts delegated to each person.
// The store permits the same account to reach a person from two delegators;
// that is still one account.
func (s *Snapshot) delegationCountByPerson() map[string]int {
	seen := make(map[string]map[string]struct{})
	counts := make(map[string]int)
	for _, d := range s.Delegations {
		accounts, ok := seen[d.DelegatedTo]
		if !ok {
			accounts = make(map[string]struct{})
			seen[d.DelegatedTo] = accounts
		}
		if _, dup := accounts[d.AccountID]; dup {
			continue
		}
		accounts[d.AccountID] = struct{}{}
		counts[d.DelegatedTo]++
	}
	return counts
}

// priceByCPT indexes the price list by code.
func (s *Snapshot) priceByCPT() map[string]float64 {
	prices := make(map[string]float64, len(s.Prices))
	for _, p := range s.Prices {
		prices[p.CPTCode] = p.AveragePrice
	}
	return prices
}

// personName resolves a display name, falling back to the id when the person
// is not in the snapshot.
func (s *Snapshot) personName(personID string) string {
	if p, ok := s.People[personID]; ok {
		return p.DisplayName()
	}
	return personID
}
