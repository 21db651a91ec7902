package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockPaymentPlanService is a mock implementation of service.PaymentPlanService.
type MockPaymentPlanService struct {
	mock.Mock
}

func (m *MockPaymentPlanService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreatePaymentPlanInput) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanService) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanService) Update(ctx context.Context, tenantID, planID uuid.UUID, input service.UpdatePaymentPlanInput) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, planID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanService) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	args := m.Called(ctx, tenantID, planID)
	return args.Error(0)
}
