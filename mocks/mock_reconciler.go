package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockReconciler is a mock implementation of service.Reconciler.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Convert(ctx context.Context, tenantID uuid.UUID, input service.ConvertInput) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}

func (m *MockReconciler) Reassign(ctx context.Context, tenantID uuid.UUID, resident *domain.Resident, previousStudioID *uuid.UUID) *service.ReconciliationOutcome {
	args := m.Called(ctx, tenantID, resident, previousStudioID)
	return args.Get(0).(*service.ReconciliationOutcome)
}

func (m *MockReconciler) DeleteResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) (*service.ReconciliationOutcome, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationOutcome), args.Error(1)
}

func (m *MockReconciler) BulkDeleteResidents(ctx context.Context, tenantID uuid.UUID, refs []domain.ResidentRef) []service.BulkDeleteResult {
	args := m.Called(ctx, tenantID, refs)
	return args.Get(0).([]service.BulkDeleteResult)
}
