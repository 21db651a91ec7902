package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/port"
)

const (
	opConvert  = "convert"
	opReassign = "reassign"
	opDelete   = "delete"
)

// ConvertInput is the DTO for turning a lead (or a walk-in) into a resident.
// LeadID is optional; when set the lead is deleted once the resident exists.
type ConvertInput struct {
	LeadID           *uuid.UUID      `json:"-"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	DurationLabel    string          `json:"duration_label"`
	StayType         *domain.Variant `json:"stay_type"`
	CheckIn          string          `json:"check_in"`
	CheckOut         string          `json:"check_out"`
	StudioID         *uuid.UUID      `json:"studio_id"`
	Revenue          decimal.Decimal `json:"revenue"`
	PaymentPlanID    *uuid.UUID      `json:"payment_plan_id"`
	InstallmentCount int             `json:"installment_count"`
}

// StepWarning records a best-effort step that failed without aborting the workflow.
type StepWarning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	err     error
}

// Err returns the underlying error.
func (w *StepWarning) Err() error { return w.err }

func newWarning(step string, err error) *StepWarning {
	return &StepWarning{Step: step, Message: err.Error(), err: err}
}

// ReconciliationOutcome is the result of a conversion, reassignment or deletion.
// A nil warning means the step succeeded or was not needed.
type ReconciliationOutcome struct {
	Resident       *domain.Resident `json:"resident"`
	Invoice        *domain.Invoice  `json:"invoice,omitempty"`
	UnitWarning    *StepWarning     `json:"unit_warning,omitempty"`
	ReleaseWarning *StepWarning     `json:"release_warning,omitempty"`
	InvoiceWarning *StepWarning     `json:"invoice_warning,omitempty"`
	LeadWarning    *StepWarning     `json:"lead_warning,omitempty"`
}

// Warnings returns the non-nil warnings in step order.
func (o *ReconciliationOutcome) Warnings() []*StepWarning {
	var out []*StepWarning
	for _, w := range []*StepWarning{o.ReleaseWarning, o.UnitWarning, o.InvoiceWarning, o.LeadWarning} {
		if w != nil {
			out = append(out, w)
		}
	}
	return out
}

// BulkDeleteResult reports what happened to one resident in a bulk delete.
type BulkDeleteResult struct {
	ID       uuid.UUID      `json:"id"`
	Variant  domain.Variant `json:"variant"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Warnings []*StepWarning `json:"warnings,omitempty"`
}

// Reconciler owns the transitions that keep studio occupancy consistent with
// resident records. Resident creation is the only step allowed to fail the
// whole operation; studio, invoice and lead mutations are best-effort.
type Reconciler interface {
	Convert(ctx context.Context, tenantID uuid.UUID, input ConvertInput) (*ReconciliationOutcome, error)
	Reassign(ctx context.Context, tenantID uuid.UUID, resident *domain.Resident, previousStudioID *uuid.UUID) *ReconciliationOutcome
	DeleteResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) (*ReconciliationOutcome, error)
	BulkDeleteResidents(ctx context.Context, tenantID uuid.UUID, refs []domain.ResidentRef) []BulkDeleteResult
}

type reconciler struct {
	residents port.ResidentRepository
	studios   port.StudioRepository
	leads     port.LeadRepository
	plans     port.PaymentPlanRepository
	invoices  InvoiceService
	lock      port.ConversionLock
	recorder  port.StepRecorder
	logger    *zap.Logger
}

// NewReconciler creates a new Reconciler implementation.
func NewReconciler(
	residents port.ResidentRepository,
	studios port.StudioRepository,
	leads port.LeadRepository,
	plans port.PaymentPlanRepository,
	invoices InvoiceService,
	lock port.ConversionLock,
	recorder port.StepRecorder,
	logger *zap.Logger,
) Reconciler {
	return &reconciler{
		residents: residents,
		studios:   studios,
		leads:     leads,
		plans:     plans,
		invoices:  invoices,
		lock:      lock,
		recorder:  recorder,
		logger:    logger,
	}
}

func (r *reconciler) Convert(ctx context.Context, tenantID uuid.UUID, input ConvertInput) (*ReconciliationOutcome, error) {
	term, err := domain.ResolveStayTerm(input.StayType, input.DurationLabel)
	if err != nil {
		return nil, err
	}
	resident, err := r.buildResident(ctx, tenantID, term, input)
	if err != nil {
		return nil, err
	}

	log := r.logger.With(zap.Stringer("tenant_id", tenantID), zap.String("variant", string(resident.Variant)))
	if input.LeadID != nil {
		log = log.With(zap.Stringer("lead_id", *input.LeadID))
		release, lockErr := r.lock.Acquire(ctx, conversionLockKey(tenantID, *input.LeadID))
		switch {
		case errors.Is(lockErr, domain.ErrConversionInProgress):
			return nil, lockErr
		case lockErr != nil:
			log.Warn("reconciler.Convert: conversion lock unavailable, continuing unlocked", zap.Error(lockErr))
		default:
			defer release()
		}
	}

	if err := r.residents.Create(ctx, resident); err != nil {
		r.recorder.RecordStep(opConvert, domain.StepCreateResident, err)
		log.Error("reconciler.Convert: resident creation failed", zap.Error(err))
		return nil, fmt.Errorf("creating %s: %w", resident.Variant, err)
	}
	if resident.ID == uuid.Nil {
		r.recorder.RecordStep(opConvert, domain.StepCreateResident, domain.ErrResidentNotCreated)
		log.Error("reconciler.Convert: resident creation returned no record")
		return nil, domain.ErrResidentNotCreated
	}
	r.recorder.RecordStep(opConvert, domain.StepCreateResident, nil)
	log = log.With(zap.Stringer("resident_id", resident.ID))

	outcome := &ReconciliationOutcome{Resident: resident}

	if input.StudioID != nil {
		err := r.studios.Claim(ctx, tenantID, *input.StudioID, resident.Ref())
		r.recorder.RecordStep(opConvert, domain.StepClaimStudio, err)
		if err != nil {
			log.Warn("reconciler.Convert: studio claim failed",
				zap.Stringer("studio_id", *input.StudioID), zap.Error(err))
			outcome.UnitWarning = newWarning(domain.StepClaimStudio, err)
			if errors.Is(err, domain.ErrNotFound) {
				r.dropMissingStudio(ctx, tenantID, resident, log)
			}
		}
	}

	invoice, err := r.invoices.CreateForResident(ctx, resident)
	r.recorder.RecordStep(opConvert, domain.StepCreateInvoice, err)
	if err != nil {
		log.Warn("reconciler.Convert: invoice creation failed", zap.Error(err))
		outcome.InvoiceWarning = newWarning(domain.StepCreateInvoice, err)
	} else {
		outcome.Invoice = invoice
	}

	if input.LeadID != nil {
		err := r.leads.Delete(ctx, tenantID, *input.LeadID)
		r.recorder.RecordStep(opConvert, domain.StepDeleteLead, err)
		if err != nil {
			log.Warn("reconciler.Convert: lead deletion failed", zap.Error(err))
			outcome.LeadWarning = newWarning(domain.StepDeleteLead, err)
		}
	}

	log.Info("reconciler.Convert: resident created", zap.Int("warnings", len(outcome.Warnings())))
	return outcome, nil
}

// buildResident assembles the variant-specific payload. It performs no writes.
func (r *reconciler) buildResident(ctx context.Context, tenantID uuid.UUID, term domain.StayTerm, input ConvertInput) (*domain.Resident, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	checkIn, err := domain.ParseDate(input.CheckIn)
	if err != nil {
		return nil, err
	}

	resident := &domain.Resident{
		TenantID:         tenantID,
		Variant:          term.Variant,
		Name:             strings.TrimSpace(input.Name),
		Email:            strings.TrimSpace(input.Email),
		Phone:            strings.TrimSpace(input.Phone),
		AssignedStudioID: input.StudioID,
		Revenue:          input.Revenue,
		CheckIn:          checkIn,
		DurationLabel:    term.Label,
	}

	switch term.Variant {
	case domain.VariantTourist:
		if checkIn == nil {
			return nil, domain.ErrCheckInRequired
		}
		checkOut, err := domain.ParseDate(input.CheckOut)
		if err != nil {
			return nil, err
		}
		if checkOut == nil {
			checkOut = checkIn
		}
		if checkOut.Before(*checkIn) {
			return nil, domain.ErrCheckOutBeforeIn
		}
		resident.CheckOut = checkOut

	case domain.VariantStudent:
		resident.InstallmentCount = input.InstallmentCount
		if input.PaymentPlanID != nil {
			resident.PaymentPlanID, resident.InstallmentPlanName = r.paymentPlan(ctx, tenantID, *input.PaymentPlanID)
		}
		resident.HasInstallments = resident.PaymentPlanID != nil || input.InstallmentCount > 1
	}
	return resident, nil
}

// paymentPlan resolves the plan id and display name stored on a student. A
// plan that does not exist is dropped entirely rather than failing the
// conversion; a failed lookup keeps the id and leaves the name empty.
func (r *reconciler) paymentPlan(ctx context.Context, tenantID, planID uuid.UUID) (*uuid.UUID, *string) {
	plan, err := r.plans.GetByID(ctx, tenantID, planID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		r.logger.Info("reconciler: payment plan not found, ignoring", zap.Stringer("payment_plan_id", planID))
		return nil, nil
	case err != nil:
		r.logger.Warn("reconciler: payment plan lookup failed",
			zap.Stringer("payment_plan_id", planID), zap.Error(err))
		return &planID, nil
	}
	name := plan.Name
	return &planID, &name
}

// dropMissingStudio clears a resident's assignment to a studio that does not
// exist, so the record never points at nothing.
func (r *reconciler) dropMissingStudio(ctx context.Context, tenantID uuid.UUID, resident *domain.Resident, log *zap.Logger) {
	if err := r.residents.ClearStudio(ctx, tenantID, resident.Ref()); err != nil {
		log.Warn("reconciler: clearing unknown studio assignment failed", zap.Error(err))
		return
	}
	resident.AssignedStudioID = nil
}

func (r *reconciler) Reassign(ctx context.Context, tenantID uuid.UUID, resident *domain.Resident, previousStudioID *uuid.UUID) *ReconciliationOutcome {
	outcome := &ReconciliationOutcome{Resident: resident}
	next := resident.AssignedStudioID
	log := r.logger.With(zap.Stringer("tenant_id", tenantID), zap.Stringer("resident_id", resident.ID))

	if previousStudioID != nil && (next == nil || *next != *previousStudioID) {
		err := r.studios.Release(ctx, tenantID, *previousStudioID, resident.ID)
		r.recorder.RecordStep(opReassign, domain.StepReleaseStudio, err)
		if err != nil {
			log.Warn("reconciler.Reassign: releasing previous studio failed",
				zap.Stringer("studio_id", *previousStudioID), zap.Error(err))
			outcome.ReleaseWarning = newWarning(domain.StepReleaseStudio, err)
		}
	}

	if next != nil {
		err := r.studios.Claim(ctx, tenantID, *next, resident.Ref())
		r.recorder.RecordStep(opReassign, domain.StepClaimStudio, err)
		if err != nil {
			log.Warn("reconciler.Reassign: claiming new studio failed",
				zap.Stringer("studio_id", *next), zap.Error(err))
			outcome.UnitWarning = newWarning(domain.StepClaimStudio, err)
			if errors.Is(err, domain.ErrNotFound) {
				r.dropMissingStudio(ctx, tenantID, resident, log)
			}
		}
	}
	return outcome
}

func (r *reconciler) DeleteResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) (*ReconciliationOutcome, error) {
	resident, err := r.residents.GetByID(ctx, tenantID, ref.Variant, ref.ID)
	if err != nil {
		return nil, err
	}
	outcome := &ReconciliationOutcome{Resident: resident}
	log := r.logger.With(zap.Stringer("tenant_id", tenantID), zap.Stringer("resident_id", ref.ID))

	if resident.AssignedStudioID != nil {
		err := r.studios.Release(ctx, tenantID, *resident.AssignedStudioID, resident.ID)
		r.recorder.RecordStep(opDelete, domain.StepReleaseStudio, err)
		if err != nil {
			log.Warn("reconciler.DeleteResident: releasing studio failed",
				zap.Stringer("studio_id", *resident.AssignedStudioID), zap.Error(err))
			outcome.ReleaseWarning = newWarning(domain.StepReleaseStudio, err)
		}
	}

	err = r.residents.Delete(ctx, tenantID, ref.Variant, ref.ID)
	r.recorder.RecordStep(opDelete, domain.StepDeleteResident, err)
	if err != nil {
		log.Error("reconciler.DeleteResident: resident deletion failed", zap.Error(err))
		return outcome, err
	}
	return outcome, nil
}

func (r *reconciler) BulkDeleteResidents(ctx context.Context, tenantID uuid.UUID, refs []domain.ResidentRef) []BulkDeleteResult {
	results := make([]BulkDeleteResult, 0, len(refs))
	for _, ref := range refs {
		res := BulkDeleteResult{ID: ref.ID, Variant: ref.Variant}
		outcome, err := r.DeleteResident(ctx, tenantID, ref)
		if outcome != nil {
			res.Warnings = outcome.Warnings()
		}
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
		}
		results = append(results, res)
	}
	return results
}

func conversionLockKey(tenantID, leadID uuid.UUID) string {
	return fmt.Sprintf("stayos:convert:%s:%s", tenantID, leadID)
}
