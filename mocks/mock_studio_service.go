package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockStudioService is a mock implementation of service.StudioService.
type MockStudioService struct {
	mock.Mock
}

func (m *MockStudioService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateStudioInput) (*domain.Studio, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

func (m *MockStudioService) GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	args := m.Called(ctx, tenantID, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

func (m *MockStudioService) List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error) {
	args := m.Called(ctx, tenantID, vacantOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Studio), args.Int(1), args.Error(2)
}

func (m *MockStudioService) Update(ctx context.Context, tenantID, studioID uuid.UUID, input service.UpdateStudioInput) (*domain.Studio, error) {
	args := m.Called(ctx, tenantID, studioID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}

func (m *MockStudioService) Delete(ctx context.Context, tenantID, studioID uuid.UUID) error {
	args := m.Called(ctx, tenantID, studioID)
	return args.Error(0)
}

func (m *MockStudioService) Release(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	args := m.Called(ctx, tenantID, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Studio), args.Error(1)
}
