package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
)

// MockResidentRepo is a mock implementation of port.ResidentRepository.
type MockResidentRepo struct {
	mock.Mock
}

func (m *MockResidentRepo) Create(ctx context.Context, resident *domain.Resident) error {
	args := m.Called(ctx, resident)
	return args.Error(0)
}

func (m *MockResidentRepo) GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error) {
	args := m.Called(ctx, tenantID, variant, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resident), args.Error(1)
}

func (m *MockResidentRepo) List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error) {
	args := m.Called(ctx, tenantID, variant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Resident), args.Int(1), args.Error(2)
}

func (m *MockResidentRepo) ListAssigned(ctx context.Context, tenantID uuid.UUID) ([]domain.Resident, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resident), args.Error(1)
}

func (m *MockResidentRepo) Update(ctx context.Context, resident *domain.Resident) error {
	args := m.Called(ctx, resident)
	return args.Error(0)
}

func (m *MockResidentRepo) ClearStudio(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) error {
	args := m.Called(ctx, tenantID, ref)
	return args.Error(0)
}

func (m *MockResidentRepo) Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, variant, residentID)
	return args.Error(0)
}
