package repository

import (
	"testing"

	"schedura/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrg(t *testing.T, r *OrganisationRepository) *models.Organisation {
	t.Helper()
	org := &models.Organisation{Name: "Coworking Hub", OwnerID: 1}
	require.NoError(t, r.Create(org))
	return org
}

func TestAddMemberRejectsDuplicate(t *testing.T) {
	r := NewOrganisationRepository(testDB(t))
	org := seedOrg(t, r)

	require.NoError(t, r.AddMember(2, org.ID, nil))
	assert.ErrorIs(t, r.AddMember(2, org.ID, nil), ErrAlreadyMember)
}

func TestRejoinAfterLeave(t *testing.T) {
	r := NewOrganisationRepository(testDB(t))
	org := seedOrg(t, r)

	require.NoError(t, r.AddMember(2, org.ID, nil))
	require.NoError(t, r.RemoveMember(2, org.ID))

	ok, err := r.IsMember(2, org.ID)
	require.NoError(t, err)
	require.False(t, ok)

	// The unique (user, organisation) key must be free again.
	require.NoError(t, r.AddMember(2, org.ID, nil))

	members, err := r.ListMembers(org.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestListByMemberExcludesLeftOrganisations(t *testing.T) {
	r := NewOrganisationRepository(testDB(t))
	stay := seedOrg(t, r)
	left := &models.Organisation{Name: "Event Lofts", OwnerID: 1}
	require.NoError(t, r.Create(left))

	require.NoError(t, r.AddMember(2, stay.ID, nil))
	require.NoError(t, r.AddMember(2, left.ID, nil))
	require.NoError(t, r.RemoveMember(2, left.ID))

	orgs, err := r.ListByMember(2)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, stay.ID, orgs[0].ID)
}
