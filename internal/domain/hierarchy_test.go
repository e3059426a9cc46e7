package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleProfileRowsManagerMultiParent(t *testing.T) {
	profile := RoleProfile{Manager: &ManagerProfile{VpIDs: []string{"vp1", "vp2", "vp3"}, CustomLabel: "Area Lead"}}

	rows, err := profile.Rows("mgr1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		require.Equal(t, RoleTierManager, row.Tier)
		require.Equal(t, "mgr1", row.PersonID)
		require.Equal(t, "Area Lead", row.CustomLabel)
		require.NotNil(t, row.ParentID)
		require.Equal(t, profile.Manager.VpIDs[i], *row.ParentID)
	}
}

func TestRoleProfileRowsManagerRequiresVp(t *testing.T) {
	profile := RoleProfile{Manager: &ManagerProfile{}}

	_, err := profile.Rows("mgr1")
	require.ErrorIs(t, err, ErrManagerNeedsVp)
}

func TestRoleProfileRowsRep(t *testing.T) {
	unattached := RoleProfile{Rep: &RepProfile{}}
	rows, err := unattached.Rows("rep1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].ParentID)
	require.Equal(t, RoleTierRep, rows[0].Tier)

	mgr := "mgr1"
	attached := RoleProfile{Rep: &RepProfile{ManagerID: &mgr}}
	rows, err = attached.Rows("rep1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "mgr1", *rows[0].ParentID)
}

func TestRoleProfileRowsVp(t *testing.T) {
	regionless := RoleProfile{Vp: &VpProfile{}}
	rows, err := regionless.Rows("vp1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].RegionID)

	regional := RoleProfile{Vp: &VpProfile{RegionIDs: []string{"r1", "r2"}}}
	rows, err = regional.Rows("vp1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "r1", *rows[0].RegionID)
	require.Equal(t, "r2", *rows[1].RegionID)
}

func TestRoleProfileValidateExclusivity(t *testing.T) {
	require.ErrorIs(t, RoleProfile{}.Validate(), ErrMixedTiers)

	both := RoleProfile{
		Rep: &RepProfile{},
		Vp:  &VpProfile{},
	}
	require.ErrorIs(t, both.Validate(), ErrMixedTiers)
}

func TestProfileFromRowsRoundTrip(t *testing.T) {
	original := RoleProfile{Manager: &ManagerProfile{VpIDs: []string{"vp1", "vp2"}, CustomLabel: "Lead"}}
	rows, err := original.Rows("mgr1")
	require.NoError(t, err)

	folded, err := ProfileFromRows(rows)
	require.NoError(t, err)
	require.NotNil(t, folded.Manager)
	require.Equal(t, original.Manager.VpIDs, folded.Manager.VpIDs)
	require.Equal(t, "Lead", folded.Manager.CustomLabel)
}

func TestProfileFromRowsMixedTiers(t *testing.T) {
	rows := []HierarchyAssignment{
		{PersonID: "p1", Tier: RoleTierRep},
		{PersonID: "p1", Tier: RoleTierManager},
	}

	_, err := ProfileFromRows(rows)
	require.ErrorIs(t, err, ErrMixedTiers)
}

func TestProfileFromRowsEmpty(t *testing.T) {
	profile, err := ProfileFromRows(nil)
	require.NoError(t, err)
	require.Equal(t, RoleTier(""), profile.Tier())
}

func TestStatusFromEncoderCode(t *testing.T) {
	status, ok := StatusFromEncoderCode(4)
	require.True(t, ok)
	require.Equal(t, ContentStatusFinished, status)

	status, ok = StatusFromEncoderCode(5)
	require.True(t, ok)
	require.Equal(t, ContentStatusError, status)

	for _, code := range []int{0, 1, 2, 3, 6, -1} {
		_, ok := StatusFromEncoderCode(code)
		require.False(t, ok, "code %d should be ignored", code)
	}
}
