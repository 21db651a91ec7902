package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayos/internal/domain"
)

func TestStudioClaimRelease_StateMachine(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tenantID := uuid.New()
	studio := s.SeedStudio(tenantID, "A1")
	a := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantTourist}
	b := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantStudent}

	require.NoError(t, s.Studios().Claim(ctx, tenantID, studio.ID, a))
	require.NoError(t, s.Studios().Claim(ctx, tenantID, studio.ID, a), "re-claim by holder is a no-op")
	assert.ErrorIs(t, s.Studios().Claim(ctx, tenantID, studio.ID, b), domain.ErrStudioOccupied)
	assert.ErrorIs(t, s.Studios().Release(ctx, tenantID, studio.ID, b.ID), domain.ErrStudioOccupied)

	got, err := s.Studios().GetByID(ctx, tenantID, studio.ID)
	require.NoError(t, err)
	assert.True(t, got.HeldBy(a.ID))

	require.NoError(t, s.Studios().Release(ctx, tenantID, studio.ID, a.ID))
	require.NoError(t, s.Studios().Release(ctx, tenantID, studio.ID, a.ID), "releasing a vacant studio is a no-op")

	got, err = s.Studios().GetByID(ctx, tenantID, studio.ID)
	require.NoError(t, err)
	assert.False(t, got.Occupied)
	assert.Nil(t, got.OccupiedBy)
}

func TestStudioClaim_OtherTenant(t *testing.T) {
	s := NewStore()
	studio := s.SeedStudio(uuid.New(), "B2")

	err := s.Studios().Claim(context.Background(), uuid.New(), studio.ID,
		domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantStudent})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFailOn_CountsCalls(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")
	s.FailOn(OpResidentCreate, boom)

	r := &domain.Resident{TenantID: uuid.New(), Variant: domain.VariantStudent, Name: "x"}
	err := s.Residents().Create(context.Background(), r)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Calls(OpResidentCreate))
	assert.Empty(t, s.AllResidents())

	s.FailOn(OpResidentCreate, nil)
	require.NoError(t, s.Residents().Create(context.Background(), r))
	assert.Len(t, s.AllResidents(), 1)
}

func TestFailOnID_TargetsOneEntity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tenantID := uuid.New()
	a := s.SeedStudio(tenantID, "A1")
	b := s.SeedStudio(tenantID, "B1")
	ref := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantTourist}
	boom := errors.New("row locked")

	s.FailOnID(OpStudioClaim, a.ID, boom)
	assert.ErrorIs(t, s.Studios().Claim(ctx, tenantID, a.ID, ref), boom)
	require.NoError(t, s.Studios().Claim(ctx, tenantID, b.ID, ref))
	assert.Equal(t, 2, s.Calls(OpStudioClaim))

	s.FailOnID(OpStudioClaim, a.ID, nil)
	other := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantStudent}
	assert.NoError(t, s.Studios().Claim(ctx, tenantID, a.ID, other))

	global := errors.New("connection reset")
	s.FailOnID(OpStudioRelease, a.ID, boom)
	s.FailOn(OpStudioRelease, global)
	assert.ErrorIs(t, s.Studios().Release(ctx, tenantID, a.ID, other.ID), global)
}
