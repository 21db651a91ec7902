package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
)

// MockStudioRepo is a mock implementation of port.StudioRepository.
type MockStudioRepo struct {
	mock.Mock
}

func (m *MockStudioRepo) Create(ctx context.Context, studio *domain.Studio) error {
	args := m.Called(ctx, studio)
	return args.Error(0)
}

func (m *MockStudioRepo) GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	args := m.Called(ctx, tenantID, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

func (m *MockStudioRepo) List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error) {
	args := m.Called(ctx, tenantID, vacantOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Studio), args.Int(1), args.Error(2)
}

func (m *MockStudioRepo) ListOccupied(ctx context.Context, tenantID uuid.UUID) ([]domain.Studio, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Studio), args.Error(1)
}

func (m *MockStudioRepo) Update(ctx context.Context, studio *domain.Studio) error {
	args := m.Called(ctx, studio)
	return args.Error(0)
}

func (m *MockStudioRepo) Delete(ctx context.Context, tenantID, studioID uuid.UUID) error {
	args := m.Called(ctx, tenantID, studioID)
	return args.Error(0)
}

func (m *MockStudioRepo) Claim(ctx context.Context, tenantID, studioID uuid.UUID, ref domain.ResidentRef) error {
	args := m.Called(ctx, tenantID, studioID, ref)
	return args.Error(0)
}

func (m *MockStudioRepo) Release(ctx context.Context, tenantID, studioID, holder uuid.UUID) error {
	args := m.Called(ctx, tenantID, studioID, holder)
	return args.Error(0)
}
