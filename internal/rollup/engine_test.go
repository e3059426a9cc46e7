package rollup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/field-intel-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		daysAgo  int
		nilTime  bool
		expected Staleness
	}{
		{name: "no activity", nilTime: true, expected: StalenessNoActivity},
		{name: "same day", daysAgo: 0, expected: StalenessFresh},
		{name: "six days", daysAgo: 6, expected: StalenessFresh},
		{name: "seven days", daysAgo: 7, expected: StalenessWarning},
		{name: "thirteen days", daysAgo: 13, expected: StalenessWarning},
		{name: "fourteen days", daysAgo: 14, expected: StalenessStale},
		{name: "ancient", daysAgo: 365, expected: StalenessStale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var lastCall *time.Time
			if !tc.nilTime {
				ts := now.AddDate(0, 0, -tc.daysAgo)
				lastCall = &ts
			}
			require.Equal(t, tc.expected, Classify(lastCall, now))
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	// Older activity never maps to a fresher bucket.
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := map[Staleness]int{StalenessFresh: 0, StalenessWarning: 1, StalenessStale: 2}

	prev := StalenessFresh
	for days := 0; days <= 30; days++ {
		ts := now.AddDate(0, 0, -days)
		got := Classify(&ts, now)
		require.GreaterOrEqual(t, rank[got], rank[prev], "bucket regressed at day %d", days)
		prev = got
	}
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Assignments: []domain.HierarchyAssignment{
			{ID: "a1", PersonID: "vp1", Tier: domain.RoleTierVp, RegionID: strPtr("r1")},
			{ID: "a2", PersonID: "mgr1", Tier: domain.RoleTierManager, ParentID: strPtr("vp1")},
			{ID: "a3", PersonID: "mgr2", Tier: domain.RoleTierManager, ParentID: strPtr("vp1"), CustomLabel: "Regional Lead"},
			{ID: "a4", PersonID: "rep1", Tier: domain.RoleTierRep, ParentID: strPtr("mgr1")},
			{ID: "a5", PersonID: "rep2", Tier: domain.RoleTierRep},
			{ID: "a6", PersonID: "rep3", Tier: domain.RoleTierRep, ParentID: strPtr("ghost")},
		},
		Delegations: []domain.AccountDelegation{
			{ID: "d1", AccountID: "acc1", DelegatedTo: "mgr1", DelegatedBy: "vp1"},
			{ID: "d2", AccountID: "acc2", DelegatedTo: "mgr1", DelegatedBy: "vp1"},
			{ID: "d3", AccountID: "acc1", DelegatedTo: "rep1", DelegatedBy: "mgr1"},
		},
		RegionLinks: []domain.SurgeonRegion{
			{SurgeonID: "acc1", RegionID: "r1"},
			{SurgeonID: "acc2", RegionID: "r1"},
			{SurgeonID: "acc3", RegionID: "r2"},
		},
		Procedures: []domain.ProcedureVolume{
			{ID: "p1", SurgeonID: "acc1", CPTCode: "27447", AnnualVolume: 100},
			{ID: "p2", SurgeonID: "acc1", CPTCode: "99999", AnnualVolume: 50},
			{ID: "p3", SurgeonID: "acc2", CPTCode: "27447", AnnualVolume: 10},
		},
		Prices: []domain.CPTPrice{
			{CPTCode: "27447", AveragePrice: 1200.50},
		},
		LastCalls: map[string]time.Time{},
		People: map[string]domain.Person{
			"vp1":  {ID: "vp1", FirstName: "Vera", LastName: "Price"},
			"mgr1": {ID: "mgr1", FirstName: "Alan", LastName: "Marsh"},
			"mgr2": {ID: "mgr2", FirstName: "Zoe", LastName: "Quinn"},
			"rep1": {ID: "rep1", FirstName: "Ray", LastName: "Park"},
		},
		Regions: map[string]domain.Region{
			"r1": {ID: "r1", Name: "Northeast"},
		},
	}
}

func TestSubordinateRollup(t *testing.T) {
	s := testSnapshot()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	threeDaysAgo := now.AddDate(0, 0, -3)
	s.LastCalls["mgr1"] = threeDaysAgo

	entries := SubordinateRollup(s, "vp1", now)
	require.Len(t, entries, 2)

	// Sorted by display name: Alan Marsh before Zoe Quinn.
	require.Equal(t, "mgr1", entries[0].PersonID)
	require.Equal(t, "mgr2", entries[1].PersonID)

	require.Equal(t, 2, entries[0].AccountCount)
	require.Equal(t, StalenessFresh, entries[0].Staleness)
	require.Equal(t, "Manager", entries[0].Label)

	require.Equal(t, 0, entries[1].AccountCount)
	require.Equal(t, StalenessNoActivity, entries[1].Staleness)
	require.Nil(t, entries[1].LastActivity)
	require.Equal(t, "Regional Lead", entries[1].Label)
}

func TestSubordinateRollupDeduplicatesMultiRowManagers(t *testing.T) {
	s := testSnapshot()
	// mgr1 reports to vp1 twice through separate rows.
	s.Assignments = append(s.Assignments, domain.HierarchyAssignment{
		ID: "a7", PersonID: "mgr1", Tier: domain.RoleTierManager, ParentID: strPtr("vp1"),
	})

	entries := SubordinateRollup(s, "vp1", time.Now())
	require.Len(t, entries, 2)
}

func TestSubordinateRollupCountsDistinctAccounts(t *testing.T) {
	s := testSnapshot()
	// acc1 reaches mgr1 a second time through a different delegator.
	s.Delegations = append(s.Delegations, domain.AccountDelegation{
		ID: "d4", AccountID: "acc1", DelegatedTo: "mgr1", DelegatedBy: "mgr2",
	})

	entries := SubordinateRollup(s, "vp1", time.Now())
	require.Equal(t, "mgr1", entries[0].PersonID)
	require.Equal(t, 2, entries[0].AccountCount)
}

func TestUnassignedPeople(t *testing.T) {
	s := testSnapshot()

	// rep2 has no parent, rep3 points at someone holding no assignment.
	// VPs are parentless by design and never listed.
	require.Equal(t, []string{"rep2", "rep3"}, UnassignedPeople(s))
}

func TestUnassignedPeopleManagerWithOneActiveParent(t *testing.T) {
	s := testSnapshot()
	// A manager with one dangling and one active parent row stays attached.
	s.Assignments = append(s.Assignments,
		domain.HierarchyAssignment{ID: "a8", PersonID: "mgr3", Tier: domain.RoleTierManager, ParentID: strPtr("ghost")},
		domain.HierarchyAssignment{ID: "a9", PersonID: "mgr3", Tier: domain.RoleTierManager, ParentID: strPtr("vp1")},
	)

	require.NotContains(t, UnassignedPeople(s), "mgr3")
}

func TestScopeAccounts(t *testing.T) {
	s := testSnapshot()

	// VP scope comes from region membership, not delegations.
	require.Equal(t, []string{"acc1", "acc2"}, ScopeAccounts(s, "vp1"))

	// Manager scope is inbound delegations.
	require.Equal(t, []string{"acc1", "acc2"}, ScopeAccounts(s, "mgr1"))

	require.Empty(t, ScopeAccounts(s, "rep2"))
}

func TestUnassignedAccounts(t *testing.T) {
	s := testSnapshot()

	// mgr1 holds acc1+acc2 and has delegated acc1 onward.
	require.Equal(t, []string{"acc2"}, UnassignedAccounts(s, "mgr1"))

	// vp1 delegated acc1 and acc2 to mgr1 already.
	require.Empty(t, UnassignedAccounts(s, "vp1"))
}

func TestMarketPotential(t *testing.T) {
	s := testSnapshot()

	// 100 × 1200.50; the unpriced code contributes nothing.
	require.InDelta(t, 120050.0, MarketPotential(s, "acc1"), 0.001)
	require.InDelta(t, 12005.0, MarketPotential(s, "acc2"), 0.001)
	require.Zero(t, MarketPotential(s, "acc3"))
}

func TestScopePotential(t *testing.T) {
	s := testSnapshot()
	require.InDelta(t, 132055.0, ScopePotential(s, "vp1"), 0.001)
}

func TestBreadcrumbs(t *testing.T) {
	s := testSnapshot()

	trail, err := Breadcrumbs(s, "rep1")
	require.NoError(t, err)
	require.Equal(t, []string{"Northeast", "Vera Price", "Alan Marsh", "Ray Park"}, trail)
}

func TestBreadcrumbsStopsAtParentless(t *testing.T) {
	s := testSnapshot()

	trail, err := Breadcrumbs(s, "rep2")
	require.NoError(t, err)
	require.Equal(t, []string{"rep2"}, trail)
}

func TestBreadcrumbsCycle(t *testing.T) {
	s := &Snapshot{
		Assignments: []domain.HierarchyAssignment{
			{ID: "a1", PersonID: "p1", Tier: domain.RoleTierManager, ParentID: strPtr("p2")},
			{ID: "a2", PersonID: "p2", Tier: domain.RoleTierManager, ParentID: strPtr("p1")},
		},
		People:  map[string]domain.Person{},
		Regions: map[string]domain.Region{},
	}

	_, err := Breadcrumbs(s, "p1")
	require.ErrorIs(t, err, ErrHierarchyCycle)
}
