package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/leadimport"
	"stayos/internal/port"
)

// CreateLeadInput is the DTO for creating a lead by hand.
type CreateLeadInput struct {
	Name             string          `json:"name" binding:"required"`
	Email            string          `json:"email" binding:"omitempty,email"`
	Phone            string          `json:"phone"`
	DurationLabel    string          `json:"duration_label"`
	AssignedStudioID *uuid.UUID      `json:"assigned_studio_id"`
	Revenue          decimal.Decimal `json:"revenue"`
	Notes            string          `json:"notes"`
}

// UpdateLeadInput is the DTO for editing a lead. Nil fields are left unchanged.
type UpdateLeadInput struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email" binding:"omitempty,email"`
	Phone            *string          `json:"phone"`
	DurationLabel    *string          `json:"duration_label"`
	AssignedStudioID *uuid.UUID       `json:"assigned_studio_id"`
	Revenue          *decimal.Decimal `json:"revenue"`
	Notes            *string          `json:"notes"`
}

// ConvertLeadInput carries what the lead itself does not know. Name, contact
// details, duration, studio and revenue default to the lead's values.
type ConvertLeadInput struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email" binding:"omitempty,email"`
	Phone            *string          `json:"phone"`
	StayType         *domain.Variant  `json:"stay_type"`
	CheckIn          string           `json:"check_in"`
	CheckOut         string           `json:"check_out"`
	StudioID         *uuid.UUID       `json:"studio_id"`
	DurationLabel    *string          `json:"duration_label"`
	Revenue          *decimal.Decimal `json:"revenue"`
	PaymentPlanID    *uuid.UUID       `json:"payment_plan_id"`
	InstallmentCount int              `json:"installment_count"`
}

// ImportResult reports the outcome of one spreadsheet row.
type ImportResult struct {
	Line   int        `json:"line"`
	LeadID *uuid.UUID `json:"lead_id,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// LeadService defines the lead management contract.
type LeadService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateLeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, tenantID, leadID uuid.UUID, input UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, tenantID, leadID uuid.UUID) error
	Import(ctx context.Context, tenantID uuid.UUID, r io.Reader) ([]ImportResult, error)
	Convert(ctx context.Context, tenantID, leadID uuid.UUID, input ConvertLeadInput) (*ReconciliationOutcome, error)
}

type leadService struct {
	repo       port.LeadRepository
	reconciler Reconciler
	logger     *zap.Logger
}

// NewLeadService creates a new LeadService implementation.
func NewLeadService(repo port.LeadRepository, reconciler Reconciler, logger *zap.Logger) LeadService {
	return &leadService{repo: repo, reconciler: reconciler, logger: logger}
}

func (s *leadService) Create(ctx context.Context, tenantID uuid.UUID, input CreateLeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		TenantID:         tenantID,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		DurationLabel:    input.DurationLabel,
		AssignedStudioID: input.AssignedStudioID,
		Revenue:          input.Revenue,
		Source:           domain.LeadSourceManual,
		Notes:            input.Notes,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	return s.repo.GetByID(ctx, tenantID, leadID)
}

func (s *leadService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error) {
	return s.repo.List(ctx, tenantID, offset, limit)
}

func (s *leadService) Update(ctx context.Context, tenantID, leadID uuid.UUID, input UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.DurationLabel != nil {
		lead.DurationLabel = *input.DurationLabel
	}
	if input.AssignedStudioID != nil {
		lead.AssignedStudioID = input.AssignedStudioID
	}
	if input.Revenue != nil {
		lead.Revenue = *input.Revenue
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, leadID)
}

// Import creates a lead per valid spreadsheet row. Bad rows are reported and skipped.
func (s *leadService) Import(ctx context.Context, tenantID uuid.UUID, r io.Reader) ([]ImportResult, error) {
	rows, err := leadimport.Read(r)
	if err != nil {
		return nil, err
	}

	results := make([]ImportResult, 0, len(rows))
	created := 0
	for _, row := range rows {
		res := ImportResult{Line: row.Line}
		if row.Err != nil {
			res.Error = row.Err.Error()
			results = append(results, res)
			continue
		}
		lead := row.Lead
		lead.TenantID = tenantID
		if err := s.repo.Create(ctx, &lead); err != nil {
			s.logger.Warn("leadService.Import: row failed", zap.Int("line", row.Line), zap.Error(err))
			res.Error = err.Error()
		} else {
			id := lead.ID
			res.LeadID = &id
			created++
		}
		results = append(results, res)
	}

	s.logger.Info("leadService.Import: done",
		zap.Stringer("tenant_id", tenantID), zap.Int("rows", len(rows)), zap.Int("created", created))
	return results, nil
}

func (s *leadService) Convert(ctx context.Context, tenantID, leadID uuid.UUID, input ConvertLeadInput) (*ReconciliationOutcome, error) {
	lead, err := s.repo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	conv := ConvertInput{
		LeadID:           &lead.ID,
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            lead.Phone,
		DurationLabel:    lead.DurationLabel,
		StayType:         input.StayType,
		CheckIn:          input.CheckIn,
		CheckOut:         input.CheckOut,
		StudioID:         lead.AssignedStudioID,
		Revenue:          lead.Revenue,
		PaymentPlanID:    input.PaymentPlanID,
		InstallmentCount: input.InstallmentCount,
	}
	if input.Name != nil {
		conv.Name = *input.Name
	}
	if input.Email != nil {
		conv.Email = *input.Email
	}
	if input.Phone != nil {
		conv.Phone = *input.Phone
	}
	if input.StudioID != nil {
		conv.StudioID = input.StudioID
	}
	if input.DurationLabel != nil {
		conv.DurationLabel = *input.DurationLabel
	}
	if input.Revenue != nil {
		conv.Revenue = *input.Revenue
	}

	return s.reconciler.Convert(ctx, tenantID, conv)
}
