package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
)

// MockLeadRepo is a mock implementation of port.LeadRepository.
type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	args := m.Called(ctx, tenantID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepo) Update(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	args := m.Called(ctx, tenantID, leadID)
	return args.Error(0)
}
