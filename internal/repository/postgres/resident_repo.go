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

// Tourists and students live in separate tables with a shared column prefix.
const (
	touristsTable = "tourists"
	studentsTable = "students"
)

type residentRepo struct {
	db *sqlx.DB
}

// NewResidentRepo creates a new PostgreSQL-backed ResidentRepository.
func NewResidentRepo(db *sqlx.DB) port.ResidentRepository {
	return &residentRepo{db: db}
}

func tableFor(variant domain.Variant) (string, error) {
	switch variant {
	case domain.VariantTourist:
		return touristsTable, nil
	case domain.VariantStudent:
		return studentsTable, nil
	default:
		return "", domain.ErrInvalidVariant
	}
}

func (r *residentRepo) Create(ctx context.Context, resident *domain.Resident) error {
	resident.ID = uuid.New()
	now := time.Now().UTC()
	resident.CreatedAt = now
	resident.UpdatedAt = now

	var err error
	switch resident.Variant {
	case domain.VariantTourist:
		_, err = r.db.ExecContext(ctx, `INSERT INTO tourists (id, tenant_id, name, email, phone,
			assigned_studio_id, revenue, check_in, check_out, duration_label, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			resident.ID, resident.TenantID, resident.Name, resident.Email, resident.Phone,
			resident.AssignedStudioID, resident.Revenue, resident.CheckIn, resident.CheckOut,
			resident.DurationLabel, resident.CreatedAt, resident.UpdatedAt)
	case domain.VariantStudent:
		_, err = r.db.ExecContext(ctx, `INSERT INTO students (id, tenant_id, name, email, phone,
			assigned_studio_id, revenue, check_in, duration_label, payment_plan_id,
			has_installments, installment_count, installment_plan_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			resident.ID, resident.TenantID, resident.Name, resident.Email, resident.Phone,
			resident.AssignedStudioID, resident.Revenue, resident.CheckIn, resident.DurationLabel,
			resident.PaymentPlanID, resident.HasInstallments, resident.InstallmentCount,
			resident.InstallmentPlanName, resident.CreatedAt, resident.UpdatedAt)
	default:
		resident.ID = uuid.Nil
		return domain.ErrInvalidVariant
	}
	if err != nil {
		resident.ID = uuid.Nil
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return fmt.Errorf("residentRepo.Create: %w", err)
	}
	return nil
}

func (r *residentRepo) GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error) {
	table, err := tableFor(variant)
	if err != nil {
		return nil, err
	}
	var resident domain.Resident
	err = r.db.GetContext(ctx, &resident,
		"SELECT * FROM "+table+" WHERE id = $1 AND tenant_id = $2", residentID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("residentRepo.GetByID: %w", err)
	}
	resident.Variant = variant
	return &resident, nil
}

func (r *residentRepo) List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error) {
	table, err := tableFor(variant)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM "+table+" WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("residentRepo.List count: %w", err)
	}

	var residents []domain.Resident
	err = r.db.SelectContext(ctx, &residents,
		"SELECT * FROM "+table+" WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("residentRepo.List: %w", err)
	}
	for i := range residents {
		residents[i].Variant = variant
	}
	return residents, total, nil
}

func (r *residentRepo) ListAssigned(ctx context.Context, tenantID uuid.UUID) ([]domain.Resident, error) {
	var out []domain.Resident
	for _, variant := range []domain.Variant{domain.VariantTourist, domain.VariantStudent} {
		table, _ := tableFor(variant)
		var residents []domain.Resident
		err := r.db.SelectContext(ctx, &residents,
			"SELECT * FROM "+table+" WHERE tenant_id = $1 AND assigned_studio_id IS NOT NULL", tenantID)
		if err != nil {
			return nil, fmt.Errorf("residentRepo.ListAssigned %s: %w", table, err)
		}
		for i := range residents {
			residents[i].Variant = variant
		}
		out = append(out, residents...)
	}
	return out, nil
}

func (r *residentRepo) Update(ctx context.Context, resident *domain.Resident) error {
	resident.UpdatedAt = time.Now().UTC()

	var (
		result sql.Result
		err    error
	)
	switch resident.Variant {
	case domain.VariantTourist:
		result, err = r.db.ExecContext(ctx, `UPDATE tourists SET name = $1, email = $2, phone = $3,
			assigned_studio_id = $4, revenue = $5, check_in = $6, check_out = $7,
			duration_label = $8, updated_at = $9
			WHERE id = $10 AND tenant_id = $11`,
			resident.Name, resident.Email, resident.Phone, resident.AssignedStudioID,
			resident.Revenue, resident.CheckIn, resident.CheckOut, resident.DurationLabel,
			resident.UpdatedAt, resident.ID, resident.TenantID)
	case domain.VariantStudent:
		result, err = r.db.ExecContext(ctx, `UPDATE students SET name = $1, email = $2, phone = $3,
			assigned_studio_id = $4, revenue = $5, check_in = $6, duration_label = $7,
			payment_plan_id = $8, has_installments = $9, installment_count = $10,
			installment_plan_name = $11, updated_at = $12
			WHERE id = $13 AND tenant_id = $14`,
			resident.Name, resident.Email, resident.Phone, resident.AssignedStudioID,
			resident.Revenue, resident.CheckIn, resident.DurationLabel, resident.PaymentPlanID,
			resident.HasInstallments, resident.InstallmentCount, resident.InstallmentPlanName,
			resident.UpdatedAt, resident.ID, resident.TenantID)
	default:
		return domain.ErrInvalidVariant
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return fmt.Errorf("residentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *residentRepo) ClearStudio(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) error {
	table, err := tableFor(ref.Variant)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE "+table+" SET assigned_studio_id = NULL, updated_at = $1 WHERE id = $2 AND tenant_id = $3",
		time.Now().UTC(), ref.ID, tenantID)
	if err != nil {
		return fmt.Errorf("residentRepo.ClearStudio: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *residentRepo) Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) error {
	table, err := tableFor(variant)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE id = $1 AND tenant_id = $2", residentID, tenantID)
	if err != nil {
		return fmt.Errorf("residentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
