package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stayos/internal/domain"
	"stayos/internal/port"
)

type paymentPlanRepo struct {
	db *sqlx.DB
}

// NewPaymentPlanRepo creates a new PostgreSQL-backed PaymentPlanRepository.
func NewPaymentPlanRepo(db *sqlx.DB) port.PaymentPlanRepository {
	return &paymentPlanRepo{db: db}
}

func (r *paymentPlanRepo) Create(ctx context.Context, plan *domain.PaymentPlan) error {
	plan.ID = uuid.New()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `INSERT INTO payment_plans (id, tenant_id, name, installments,
		is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		plan.ID, plan.TenantID, plan.Name, plan.Installments, plan.IsActive, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("paymentPlanRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentPlanRepo) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	var plan domain.PaymentPlan
	err := r.db.GetContext(ctx, &plan,
		"SELECT * FROM payment_plans WHERE id = $1 AND tenant_id = $2", planID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentPlanRepo.GetByID: %w", err)
	}
	return &plan, nil
}

func (r *paymentPlanRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPlan, error) {
	var plans []domain.PaymentPlan
	err := r.db.SelectContext(ctx, &plans,
		"SELECT * FROM payment_plans WHERE tenant_id = $1 ORDER BY name ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("paymentPlanRepo.List: %w", err)
	}
	return plans, nil
}

func (r *paymentPlanRepo) Update(ctx context.Context, plan *domain.PaymentPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE payment_plans
		SET name = $1, installments = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		plan.Name, plan.Installments, plan.IsActive, plan.UpdatedAt, plan.ID, plan.TenantID)
	if err != nil {
		return fmt.Errorf("paymentPlanRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *paymentPlanRepo) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM payment_plans WHERE id = $1 AND tenant_id = $2", planID, tenantID)
	if err != nil {
		return fmt.Errorf("paymentPlanRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
