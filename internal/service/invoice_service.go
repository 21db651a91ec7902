package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayos/internal/config"
	"stayos/internal/domain"
	"stayos/internal/port"
)

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	CreateForResident(ctx context.Context, resident *domain.Resident) (*domain.Invoice, error)
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filters domain.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	SendReminder(ctx context.Context, tenantID, invoiceID uuid.UUID) error
	MarkOverdue(ctx context.Context) (int64, error)
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	residentRepo port.ResidentRepository
	email        port.EmailSender
	cfg          config.BillingConfig
	now          func() time.Time
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	residentRepo port.ResidentRepository,
	email port.EmailSender,
	cfg config.BillingConfig,
	logger *zap.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		residentRepo: residentRepo,
		email:        email,
		cfg:          cfg,
		now:          time.Now,
		logger:       logger,
	}
}

// CreateForResident bills the resident's revenue. The invoice falls due on
// check-in when known, otherwise InvoiceDueDays from today.
func (s *invoiceService) CreateForResident(ctx context.Context, resident *domain.Resident) (*domain.Invoice, error) {
	invoice := &domain.Invoice{
		TenantID:        resident.TenantID,
		ResidentID:      resident.ID,
		ResidentVariant: resident.Variant,
		Amount:          resident.Revenue,
		DueDate:         s.dueDate(resident),
		Status:          domain.InvoiceStatusPending,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) dueDate(resident *domain.Resident) time.Time {
	if resident.CheckIn != nil {
		return *resident.CheckIn
	}
	today := s.now().UTC()
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, s.cfg.InvoiceDueDays)
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, filters domain.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, tenantID, filters, offset, limit)
}

func (s *invoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.transition(ctx, tenantID, invoiceID, domain.InvoiceStatusPaid)
}

func (s *invoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.transition(ctx, tenantID, invoiceID, domain.InvoiceStatusCancelled)
}

func (s *invoiceService) transition(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if err := s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, status); err != nil {
		return nil, err
	}
	s.logger.Info("invoiceService: status changed",
		zap.Stringer("invoice_id", invoiceID), zap.String("status", string(status)))
	return s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) SendReminder(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusPending && invoice.Status != domain.InvoiceStatusOverdue {
		return domain.ErrInvoiceNotPending
	}

	resident, err := s.residentRepo.GetByID(ctx, tenantID, invoice.ResidentVariant, invoice.ResidentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invoice resident: %w", err)
		}
		return err
	}
	if resident.Email == "" {
		return domain.ErrNoResidentEmail
	}

	err = s.email.SendInvoiceReminder(ctx, port.InvoiceReminder{
		InvoiceID: invoice.ID,
		ToEmail:   resident.Email,
		ToName:    resident.Name,
		Amount:    invoice.Amount,
		Currency:  s.cfg.Currency,
		DueDate:   invoice.DueDate.Format(domain.DateLayout),
	})
	if err != nil {
		s.logger.Error("invoiceService.SendReminder: email failed",
			zap.Stringer("invoice_id", invoiceID), zap.Error(err))
		return fmt.Errorf("sending reminder: %w", err)
	}
	return nil
}

// MarkOverdue flips pending invoices whose due date has passed.
func (s *invoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	today := s.now().UTC()
	asOf := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	n, err := s.invoiceRepo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	s.logger.Info("invoiceService.MarkOverdue: done", zap.Int64("invoices", n))
	return n, nil
}
