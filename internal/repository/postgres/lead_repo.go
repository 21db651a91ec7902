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

type leadRepo struct {
	db *sqlx.DB
}

// NewLeadRepo creates a new PostgreSQL-backed LeadRepository.
func NewLeadRepo(db *sqlx.DB) port.LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	lead.ID = uuid.New()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	query := `INSERT INTO leads (id, tenant_id, name, email, phone, duration_label,
		assigned_studio_id, revenue, source, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.TenantID, lead.Name, lead.Email, lead.Phone, lead.DurationLabel,
		lead.AssignedStudioID, lead.Revenue, lead.Source, lead.Notes, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return fmt.Errorf("leadRepo.Create: %w", err)
	}
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.GetContext(ctx, &lead,
		"SELECT * FROM leads WHERE id = $1 AND tenant_id = $2", leadID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leadRepo.GetByID: %w", err)
	}
	return &lead, nil
}

func (r *leadRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM leads WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List count: %w", err)
	}

	var leads []domain.Lead
	err = r.db.SelectContext(ctx, &leads,
		"SELECT * FROM leads WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: %w", err)
	}
	return leads, total, nil
}

func (r *leadRepo) Update(ctx context.Context, lead *domain.Lead) error {
	lead.UpdatedAt = time.Now().UTC()
	query := `UPDATE leads SET name = $1, email = $2, phone = $3, duration_label = $4,
		assigned_studio_id = $5, revenue = $6, notes = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`
	result, err := r.db.ExecContext(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.DurationLabel,
		lead.AssignedStudioID, lead.Revenue, lead.Notes, lead.UpdatedAt,
		lead.ID, lead.TenantID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return fmt.Errorf("leadRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *leadRepo) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM leads WHERE id = $1 AND tenant_id = $2", leadID, tenantID)
	if err != nil {
		return fmt.Errorf("leadRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
