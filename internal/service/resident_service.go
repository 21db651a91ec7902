package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// UpdateResidentInput is the DTO for editing a resident. Nil fields are left
// unchanged. Set UnassignStudio to remove the studio assignment.
type UpdateResidentInput struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email" binding:"omitempty,email"`
	Phone            *string          `json:"phone"`
	AssignedStudioID *uuid.UUID       `json:"assigned_studio_id"`
	UnassignStudio   bool             `json:"unassign_studio"`
	Revenue          *decimal.Decimal `json:"revenue"`
	CheckIn          *string          `json:"check_in"`
	CheckOut         *string          `json:"check_out"`
	DurationLabel    *string          `json:"duration_label"`
	PaymentPlanID    *uuid.UUID       `json:"payment_plan_id"`
	InstallmentCount *int             `json:"installment_count"`
}

// BulkUpdateItem pairs a resident id with its edits.
type BulkUpdateItem struct {
	ID uuid.UUID `json:"id" binding:"required"`
	UpdateResidentInput
}

// BulkUpdateResult reports what happened to one resident in a bulk update.
type BulkUpdateResult struct {
	ID       uuid.UUID      `json:"id"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Warnings []*StepWarning `json:"warnings,omitempty"`
}

// ResidentService defines the resident management contract.
type ResidentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, input ConvertInput) (*ReconciliationOutcome, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error)
	List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error)
	Update(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID, input UpdateResidentInput) (*ReconciliationOutcome, error)
	BulkUpdate(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, items []BulkUpdateItem) ([]BulkUpdateResult, error)
	Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*ReconciliationOutcome, error)
	BulkDelete(ctx context.Context, tenantID uuid.UUID, role domain.UserRole, refs []domain.ResidentRef) ([]BulkDeleteResult, error)
	AuditOccupancy(ctx context.Context, tenantID uuid.UUID) ([]domain.OccupancyIssue, error)
}

type residentService struct {
	residentRepo port.ResidentRepository
	studioRepo   port.StudioRepository
	planRepo     port.PaymentPlanRepository
	reconciler   Reconciler
	logger       *zap.Logger
}

// NewResidentService creates a new ResidentService implementation.
func NewResidentService(
	residentRepo port.ResidentRepository,
	studioRepo port.StudioRepository,
	planRepo port.PaymentPlanRepository,
	reconciler Reconciler,
	logger *zap.Logger,
) ResidentService {
	return &residentService{
		residentRepo: residentRepo,
		studioRepo:   studioRepo,
		planRepo:     planRepo,
		reconciler:   reconciler,
		logger:       logger,
	}
}

// Create adds a resident directly, without a lead. The route's variant wins
// over any stay_type in the body.
func (s *residentService) Create(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, input ConvertInput) (*ReconciliationOutcome, error) {
	if !variant.Valid() {
		return nil, domain.ErrInvalidVariant
	}
	input.LeadID = nil
	input.StayType = &variant
	return s.reconciler.Convert(ctx, tenantID, input)
}

func (s *residentService) GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error) {
	return s.residentRepo.GetByID(ctx, tenantID, variant, residentID)
}

func (s *residentService) List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error) {
	return s.residentRepo.List(ctx, tenantID, variant, offset, limit)
}

func (s *residentService) Update(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID, input UpdateResidentInput) (*ReconciliationOutcome, error) {
	resident, err := s.residentRepo.GetByID(ctx, tenantID, variant, residentID)
	if err != nil {
		return nil, err
	}
	previous := resident.AssignedStudioID

	if err := s.apply(ctx, resident, input); err != nil {
		return nil, err
	}
	if err := s.residentRepo.Update(ctx, resident); err != nil {
		return nil, err
	}

	if sameID(previous, resident.AssignedStudioID) {
		return &ReconciliationOutcome{Resident: resident}, nil
	}
	return s.reconciler.Reassign(ctx, tenantID, resident, previous), nil
}

func (s *residentService) apply(ctx context.Context, resident *domain.Resident, input UpdateResidentInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domain.ErrNameRequired
		}
		resident.Name = name
	}
	if input.Email != nil {
		resident.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		resident.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.UnassignStudio {
		resident.AssignedStudioID = nil
	} else if input.AssignedStudioID != nil {
		resident.AssignedStudioID = input.AssignedStudioID
	}
	if input.Revenue != nil {
		resident.Revenue = *input.Revenue
	}
	if input.DurationLabel != nil {
		resident.DurationLabel = *input.DurationLabel
	}
	if input.CheckIn != nil {
		checkIn, err := domain.ParseDate(*input.CheckIn)
		if err != nil {
			return err
		}
		resident.CheckIn = checkIn
	}

	switch resident.Variant {
	case domain.VariantTourist:
		if input.CheckOut != nil {
			checkOut, err := domain.ParseDate(*input.CheckOut)
			if err != nil {
				return err
			}
			resident.CheckOut = checkOut
		}
		if resident.CheckOut == nil {
			resident.CheckOut = resident.CheckIn
		}
		if resident.CheckIn != nil && resident.CheckOut != nil && resident.CheckOut.Before(*resident.CheckIn) {
			return domain.ErrCheckOutBeforeIn
		}

	case domain.VariantStudent:
		if input.PaymentPlanID != nil && !sameID(resident.PaymentPlanID, input.PaymentPlanID) {
			plan, err := s.planRepo.GetByID(ctx, resident.TenantID, *input.PaymentPlanID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return domain.ErrUnknownReference
			case err != nil:
				s.logger.Warn("residentService.Update: payment plan lookup failed",
					zap.Stringer("payment_plan_id", *input.PaymentPlanID), zap.Error(err))
				resident.InstallmentPlanName = nil
			default:
				name := plan.Name
				resident.InstallmentPlanName = &name
			}
			resident.PaymentPlanID = input.PaymentPlanID
		}
		if input.InstallmentCount != nil {
			resident.InstallmentCount = *input.InstallmentCount
		}
		resident.HasInstallments = resident.PaymentPlanID != nil || resident.InstallmentCount > 1
	}
	return nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// BulkUpdate applies each item independently and reports per-item results.
func (s *residentService) BulkUpdate(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, items []BulkUpdateItem) ([]BulkUpdateResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyBulkSelection
	}
	results := make([]BulkUpdateResult, 0, len(items))
	for _, item := range items {
		res := BulkUpdateResult{ID: item.ID}
		outcome, err := s.Update(ctx, tenantID, variant, item.ID, item.UpdateResidentInput)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
			res.Warnings = outcome.Warnings()
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *residentService) Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*ReconciliationOutcome, error) {
	return s.reconciler.DeleteResident(ctx, tenantID, domain.ResidentRef{ID: residentID, Variant: variant})
}

// BulkDelete is restricted to admins.
func (s *residentService) BulkDelete(ctx context.Context, tenantID uuid.UUID, role domain.UserRole, refs []domain.ResidentRef) ([]BulkDeleteResult, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrInsufficientRole
	}
	if len(refs) == 0 {
		return nil, domain.ErrEmptyBulkSelection
	}
	for _, ref := range refs {
		if !ref.Variant.Valid() {
			return nil, domain.ErrInvalidVariant
		}
	}
	return s.reconciler.BulkDeleteResidents(ctx, tenantID, refs), nil
}

// AuditOccupancy reports every studio or resident whose occupancy does not
// agree with the other side. It never modifies anything.
func (s *residentService) AuditOccupancy(ctx context.Context, tenantID uuid.UUID) ([]domain.OccupancyIssue, error) {
	occupied, err := s.studioRepo.ListOccupied(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	assigned, err := s.residentRepo.ListAssigned(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	residentsByID := make(map[uuid.UUID]domain.Resident, len(assigned))
	for _, r := range assigned {
		residentsByID[r.ID] = r
	}
	studiosByID := make(map[uuid.UUID]domain.Studio, len(occupied))
	for _, st := range occupied {
		studiosByID[st.ID] = st
	}

	issues := []domain.OccupancyIssue{}
	for _, st := range occupied {
		studioID := st.ID
		holder := *st.OccupiedBy
		r, ok := residentsByID[holder]
		switch {
		case !ok:
			issues = append(issues, domain.OccupancyIssue{
				StudioID: &studioID, ResidentID: &holder,
				Problem: "studio occupant does not exist or has no studio assigned",
			})
		case *r.AssignedStudioID != st.ID:
			issues = append(issues, domain.OccupancyIssue{
				StudioID: &studioID, ResidentID: &holder, Variant: r.Variant,
				Problem: "studio occupant is assigned to a different studio",
			})
		}
	}

	for _, r := range assigned {
		residentID := r.ID
		studioID := *r.AssignedStudioID
		if st, ok := studiosByID[studioID]; ok {
			if !st.HeldBy(r.ID) {
				issues = append(issues, domain.OccupancyIssue{
					StudioID: &studioID, ResidentID: &residentID, Variant: r.Variant,
					Problem: "assigned studio is held by another resident",
				})
			}
			continue
		}
		problem := "assigned studio is vacant"
		if _, err := s.studioRepo.GetByID(ctx, tenantID, studioID); errors.Is(err, domain.ErrNotFound) {
			problem = "assigned studio does not exist"
		} else if err != nil {
			return nil, err
		}
		issues = append(issues, domain.OccupancyIssue{
			StudioID: &studioID, ResidentID: &residentID, Variant: r.Variant, Problem: problem,
		})
	}
	return issues, nil
}
