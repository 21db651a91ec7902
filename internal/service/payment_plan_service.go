package service

import (
	"context"

	"github.com/google/uuid"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// CreatePaymentPlanInput is the DTO for creating a payment plan.
type CreatePaymentPlanInput struct {
	Name         string `json:"name" binding:"required"`
	Installments int    `json:"installments" binding:"required,min=1"`
}

// UpdatePaymentPlanInput is the DTO for updating a payment plan.
type UpdatePaymentPlanInput struct {
	Name         *string `json:"name"`
	Installments *int    `json:"installments" binding:"omitempty,min=1"`
	IsActive     *bool   `json:"is_active"`
}

// PaymentPlanService defines the payment plan management contract.
type PaymentPlanService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePaymentPlanInput) (*domain.PaymentPlan, error)
	GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error)
	Update(ctx context.Context, tenantID, planID uuid.UUID, input UpdatePaymentPlanInput) (*domain.PaymentPlan, error)
	Delete(ctx context.Context, tenantID, planID uuid.UUID) error
}

type paymentPlanService struct {
	repo port.PaymentPlanRepository
}

// NewPaymentPlanService creates a new PaymentPlanService implementation.
func NewPaymentPlanService(repo port.PaymentPlanRepository) PaymentPlanService {
	return &paymentPlanService{repo: repo}
}

func (s *paymentPlanService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePaymentPlanInput) (*domain.PaymentPlan, error) {
	plan := &domain.PaymentPlan{
		TenantID:     tenantID,
		Name:         input.Name,
		Installments: input.Installments,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *paymentPlanService) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	return s.repo.GetByID(ctx, tenantID, planID)
}

func (s *paymentPlanService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *paymentPlanService) Update(ctx context.Context, tenantID, planID uuid.UUID, input UpdatePaymentPlanInput) (*domain.PaymentPlan, error) {
	plan, err := s.repo.GetByID(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Installments != nil {
		plan.Installments = *input.Installments
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *paymentPlanService) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, planID)
}
