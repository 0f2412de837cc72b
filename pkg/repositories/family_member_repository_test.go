package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/testhelpers"
)

func TestFamilyMemberRepository_CreateIgnoreDuplicate(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.ResetData(t, db.DB)
	ctx := testhelpers.ScopedContext(t, db.DB)
	repo := NewFamilyMemberRepository()

	sarah := createTestContact(t, ctx, "Sarah", "Chen")
	emma := createTestContact(t, ctx, "Emma", "Chen")

	edge := &models.FamilyMember{
		ContactID:       sarah.ID,
		FamilyContactID: emma.ID,
		Relationship:    models.RelationshipChild,
	}
	created, err := repo.CreateIgnoreDuplicate(ctx, edge)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, edge.ID)

	// The same ordered pair is a no-op, even with a different label.
	dup := &models.FamilyMember{
		ContactID:       sarah.ID,
		FamilyContactID: emma.ID,
		Relationship:    models.RelationshipSibling,
	}
	created, err = repo.CreateIgnoreDuplicate(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	// The reverse direction is a distinct edge.
	reverse := &models.FamilyMember{
		ContactID:       emma.ID,
		FamilyContactID: sarah.ID,
		Relationship:    models.RelationshipParent,
	}
	created, err = repo.CreateIgnoreDuplicate(ctx, reverse)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestFamilyMemberRepository_ListWithDetails(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.ResetData(t, db.DB)
	ctx := testhelpers.ScopedContext(t, db.DB)
	repo := NewFamilyMemberRepository()
	owner := testhelpers.PlaceholderOwnerID

	sarah := createTestContact(t, ctx, "Sarah", "Chen")
	emma := createTestContact(t, ctx, "Emma", "Chen")
	david := createTestContact(t, ctx, "David", "Chen")

	for _, edge := range []*models.FamilyMember{
		{ContactID: sarah.ID, FamilyContactID: emma.ID, Relationship: models.RelationshipChild},
		{ContactID: sarah.ID, FamilyContactID: david.ID, Relationship: models.RelationshipSpouse},
	} {
		_, err := repo.CreateIgnoreDuplicate(ctx, edge)
		require.NoError(t, err)
	}

	members, err := repo.ListWithDetails(ctx, owner, sarah.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	byName := map[string]models.Relationship{}
	for _, m := range members {
		byName[m.FirstName] = m.Relationship
	}
	assert.Equal(t, models.RelationshipChild, byName["Emma"])
	assert.Equal(t, models.RelationshipSpouse, byName["David"])

	// Contacts without edges have none.
	members, err = repo.ListWithDetails(ctx, owner, emma.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
