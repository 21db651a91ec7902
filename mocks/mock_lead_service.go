package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockLeadService is a mock implementation of service.LeadService.
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	args := m.Called(ctx, tenantID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadService) Update(ctx context.Context, tenantID, leadID uuid.UUID, input service.UpdateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, tenantID, leadID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	args := m.Called(ctx, tenantID, leadID)
	return args.Error(0)
}

func (m *MockLeadService) Import(ctx context.Context, tenantID uuid.UUID, r io.Reader) ([]service.ImportResult, error) {
	args := m.Called(ctx, tenantID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ImportResult), args.Error(1)
}

func (m *MockLeadService) Convert(ctx context.Context, tenantID, leadID uuid.UUID, input service.ConvertLeadInput) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, leadID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}
