package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stayos/internal/domain"
	"stayos/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	query := `INSERT INTO invoices (id, tenant_id, resident_id, resident_variant, amount,
		due_date, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.TenantID, invoice.ResidentID, invoice.ResidentVariant, invoice.Amount,
		invoice.DueDate, invoice.Status, invoice.PaidAt, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2", invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filters domain.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	conds := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.ResidentID != nil {
		args = append(args, *filters.ResidentID)
		conds = append(conds, fmt.Sprintf("resident_id = $%d", len(args)))
	}
	where := strings.Join(conds, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices WHERE %s ORDER BY due_date DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

// UpdateStatus moves an open (pending or overdue) invoice to status.
func (r *invoiceRepo) UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	now := time.Now().UTC()
	var paidAt *time.Time
	if status == domain.InvoiceStatusPaid {
		paidAt = &now
	}

	result, err := r.db.ExecContext(ctx, `UPDATE invoices
		SET status = $1, paid_at = $2, updated_at = $3
		WHERE id = $4 AND tenant_id = $5 AND status IN ('pending', 'overdue')`,
		status, paidAt, now, invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var exists bool
	err = r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1 AND tenant_id = $2)", invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus lookup: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvoiceNotPending
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE invoices
		SET status = 'overdue', updated_at = $1
		WHERE status = 'pending' AND due_date < $2`,
		time.Now().UTC(), asOf)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
