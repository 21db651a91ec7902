package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// CreateStudioInput is the DTO for creating a studio.
type CreateStudioInput struct {
	Name        string          `json:"name" binding:"required"`
	Floor       string          `json:"floor"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

// UpdateStudioInput is the DTO for editing a studio. Occupancy is not editable here.
type UpdateStudioInput struct {
	Name        *string          `json:"name"`
	Floor       *string          `json:"floor"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
}

// StudioService defines the studio management contract.
type StudioService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateStudioInput) (*domain.Studio, error)
	GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error)
	List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error)
	Update(ctx context.Context, tenantID, studioID uuid.UUID, input UpdateStudioInput) (*domain.Studio, error)
	Delete(ctx context.Context, tenantID, studioID uuid.UUID) error
	Release(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error)
}

type studioService struct {
	studioRepo   port.StudioRepository
	residentRepo port.ResidentRepository
	logger       *zap.Logger
}

// NewStudioService creates a new StudioService implementation.
func NewStudioService(studioRepo port.StudioRepository, residentRepo port.ResidentRepository, logger *zap.Logger) StudioService {
	return &studioService{studioRepo: studioRepo, residentRepo: residentRepo, logger: logger}
}

func (s *studioService) Create(ctx context.Context, tenantID uuid.UUID, input CreateStudioInput) (*domain.Studio, error) {
	studio := &domain.Studio{
		TenantID:    tenantID,
		Name:        input.Name,
		Floor:       input.Floor,
		MonthlyRate: input.MonthlyRate,
	}
	if err := s.studioRepo.Create(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

func (s *studioService) GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	return s.studioRepo.GetByID(ctx, tenantID, studioID)
}

func (s *studioService) List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error) {
	return s.studioRepo.List(ctx, tenantID, vacantOnly, offset, limit)
}

func (s *studioService) Update(ctx context.Context, tenantID, studioID uuid.UUID, input UpdateStudioInput) (*domain.Studio, error) {
	studio, err := s.studioRepo.GetByID(ctx, tenantID, studioID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		studio.Name = *input.Name
	}
	if input.Floor != nil {
		studio.Floor = *input.Floor
	}
	if input.MonthlyRate != nil {
		studio.MonthlyRate = *input.MonthlyRate
	}

	if err := s.studioRepo.Update(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

// Delete refuses occupied studios with domain.ErrStudioOccupied.
func (s *studioService) Delete(ctx context.Context, tenantID, studioID uuid.UUID) error {
	return s.studioRepo.Delete(ctx, tenantID, studioID)
}

// Release vacates the studio and clears its occupant's assignment. A vacant
// studio is returned unchanged.
func (s *studioService) Release(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	studio, err := s.studioRepo.GetByID(ctx, tenantID, studioID)
	if err != nil {
		return nil, err
	}
	if !studio.Occupied || studio.OccupiedBy == nil {
		return studio, nil
	}

	ref := domain.ResidentRef{ID: *studio.OccupiedBy}
	if studio.OccupantVariant != nil {
		ref.Variant = *studio.OccupantVariant
	}

	if err := s.studioRepo.Release(ctx, tenantID, studioID, ref.ID); err != nil {
		return nil, err
	}

	if err := s.residentRepo.ClearStudio(ctx, tenantID, ref); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("studioService.Release: clearing resident assignment failed",
			zap.Stringer("studio_id", studioID), zap.Stringer("resident_id", ref.ID), zap.Error(err))
	}

	return s.studioRepo.GetByID(ctx, tenantID, studioID)
}
