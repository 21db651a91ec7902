package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
)

// MockPaymentPlanRepo is a mock implementation of port.PaymentPlanRepository.
type MockPaymentPlanRepo struct {
	mock.Mock
}

func (m *MockPaymentPlanRepo) Create(ctx context.Context, plan *domain.PaymentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPaymentPlanRepo) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepo) Update(ctx context.Context, plan *domain.PaymentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPaymentPlanRepo) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	args := m.Called(ctx, tenantID, planID)
	return args.Error(0)
}
