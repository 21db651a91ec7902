package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/service"
	"stayos/mocks"
)

func TestStudioService_Release_ClearsOccupant(t *testing.T) {
	f := newReconcilerFixture(t, nil)
	svc := service.NewStudioService(f.store.Studios(), f.store.Residents(), zap.NewNop())
	ctx := context.Background()
	a := f.store.SeedStudio(f.tenantID, "A1")
	resident := f.seedResident(t, domain.VariantTourist, &a.ID)

	studio, err := svc.Release(ctx, f.tenantID, a.ID)
	require.NoError(t, err)
	assert.False(t, studio.Occupied)
	assert.Nil(t, studio.OccupiedBy)

	stored, err := f.store.Residents().GetByID(ctx, f.tenantID, domain.VariantTourist, resident.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedStudioID)
}

func TestStudioService_Release_VacantIsNoop(t *testing.T) {
	studioRepo := new(mocks.MockStudioRepo)
	residentRepo := new(mocks.MockResidentRepo)
	svc := service.NewStudioService(studioRepo, residentRepo, zap.NewNop())

	tenantID := uuid.New()
	studio := &domain.Studio{ID: uuid.New(), TenantID: tenantID}
	studioRepo.On("GetByID", mock.Anything, tenantID, studio.ID).Return(studio, nil)

	got, err := svc.Release(context.Background(), tenantID, studio.ID)
	require.NoError(t, err)
	assert.Same(t, studio, got)
	studioRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	residentRepo.AssertNotCalled(t, "ClearStudio", mock.Anything, mock.Anything, mock.Anything)
}

func TestStudioService_Release_OccupantGone(t *testing.T) {
	studioRepo := new(mocks.MockStudioRepo)
	residentRepo := new(mocks.MockResidentRepo)
	svc := service.NewStudioService(studioRepo, residentRepo, zap.NewNop())

	tenantID := uuid.New()
	holder := uuid.New()
	variant := domain.VariantStudent
	occupied := &domain.Studio{ID: uuid.New(), TenantID: tenantID, Occupied: true, OccupiedBy: &holder, OccupantVariant: &variant}
	vacated := &domain.Studio{ID: occupied.ID, TenantID: tenantID}

	studioRepo.On("GetByID", mock.Anything, tenantID, occupied.ID).Return(occupied, nil).Once()
	studioRepo.On("Release", mock.Anything, tenantID, occupied.ID, holder).Return(nil)
	residentRepo.On("ClearStudio", mock.Anything, tenantID, domain.ResidentRef{ID: holder, Variant: variant}).Return(domain.ErrNotFound)
	studioRepo.On("GetByID", mock.Anything, tenantID, occupied.ID).Return(vacated, nil).Once()

	got, err := svc.Release(context.Background(), tenantID, occupied.ID)
	require.NoError(t, err)
	assert.False(t, got.Occupied)
	studioRepo.AssertExpectations(t)
}

func TestStudioService_Release_Conflict(t *testing.T) {
	studioRepo := new(mocks.MockStudioRepo)
	svc := service.NewStudioService(studioRepo, new(mocks.MockResidentRepo), zap.NewNop())

	tenantID := uuid.New()
	holder := uuid.New()
	studio := &domain.Studio{ID: uuid.New(), TenantID: tenantID, Occupied: true, OccupiedBy: &holder}
	studioRepo.On("GetByID", mock.Anything, tenantID, studio.ID).Return(studio, nil)
	studioRepo.On("Release", mock.Anything, tenantID, studio.ID, holder).Return(domain.ErrStudioOccupied)

	_, err := svc.Release(context.Background(), tenantID, studio.ID)
	assert.True(t, errors.Is(err, domain.ErrStudioOccupied))
}

func TestStudioService_CreateUpdateDelete(t *testing.T) {
	f := newReconcilerFixture(t, nil)
	svc := service.NewStudioService(f.store.Studios(), f.store.Residents(), zap.NewNop())
	ctx := context.Background()

	studio, err := svc.Create(ctx, f.tenantID, service.CreateStudioInput{Name: "E1", Floor: "2", MonthlyRate: decimal.NewFromInt(900)})
	require.NoError(t, err)
	assert.False(t, studio.Occupied)

	rate := decimal.NewFromInt(950)
	updated, err := svc.Update(ctx, f.tenantID, studio.ID, service.UpdateStudioInput{MonthlyRate: &rate})
	require.NoError(t, err)
	assert.True(t, updated.MonthlyRate.Equal(rate))
	assert.Equal(t, "E1", updated.Name)

	f.seedResident(t, domain.VariantStudent, &studio.ID)
	assert.ErrorIs(t, svc.Delete(ctx, f.tenantID, studio.ID), domain.ErrStudioOccupied)

	vacantOnly, total, err := svc.List(ctx, f.tenantID, true, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, vacantOnly)
}
