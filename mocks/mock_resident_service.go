package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockResidentService is a mock implementation of service.ResidentService.
type MockResidentService struct {
	mock.Mock
}

func (m *MockResidentService) Create(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, input service.ConvertInput) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, variant, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}

func (m *MockResidentService) GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error) {
	args := m.Called(ctx, tenantID, variant, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resident), args.Error(1)
}

func (m *MockResidentService) List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error) {
	args := m.Called(ctx, tenantID, variant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Resident), args.Int(1), args.Error(2)
}

func (m *MockResidentService) Update(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID, input service.UpdateResidentInput) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, variant, residentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}

func (m *MockResidentService) BulkUpdate(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, items []service.BulkUpdateItem) ([]service.BulkUpdateResult, error) {
	args := m.Called(ctx, tenantID, variant, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.BulkUpdateResult), args.Error(1)
}

func (m *MockResidentService) Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, variant, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}

func (m *MockResidentService) BulkDelete(ctx context.Context, tenantID uuid.UUID, role domain.UserRole, refs []domain.ResidentRef) ([]service.BulkDeleteResult, error) {
	args := m.Called(ctx, tenantID, role, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.BulkDeleteResult), args.Error(1)
}

func (m *MockResidentService) AuditOccupancy(ctx context.Context, tenantID uuid.UUID) ([]domain.OccupancyIssue, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OccupancyIssue), args.Error(1)
}
