package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stayos/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filters domain.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	// UpdateStatus transitions an open (pending or overdue) invoice. Returns
	// domain.ErrInvoiceNotPending if the invoice exists but is already closed.
	UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	// MarkOverdue flips every pending invoice due before asOf, across tenants.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// PaymentPlanRepository defines the contract for payment plan persistence.
type PaymentPlanRepository interface {
	Create(ctx context.Context, plan *domain.PaymentPlan) error
	GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error)
	Update(ctx context.Context, plan *domain.PaymentPlan) error
	Delete(ctx context.Context, tenantID, planID uuid.UUID) error
}
