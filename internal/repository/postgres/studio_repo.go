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

type studioRepo struct {
	db *sqlx.DB
}

// NewStudioRepo creates a new PostgreSQL-backed StudioRepository.
func NewStudioRepo(db *sqlx.DB) port.StudioRepository {
	return &studioRepo{db: db}
}

func (r *studioRepo) Create(ctx context.Context, studio *domain.Studio) error {
	studio.ID = uuid.New()
	now := time.Now().UTC()
	studio.CreatedAt = now
	studio.UpdatedAt = now
	studio.Occupied = false
	studio.OccupiedBy = nil
	studio.OccupantVariant = nil

	query := `INSERT INTO studios (id, tenant_id, name, floor, monthly_rate, occupied,
		occupied_by, occupant_variant, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, NULL, NULL, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		studio.ID, studio.TenantID, studio.Name, studio.Floor, studio.MonthlyRate,
		studio.CreatedAt, studio.UpdatedAt)
	if err != nil {
		return fmt.Errorf("studioRepo.Create: %w", err)
	}
	return nil
}

func (r *studioRepo) GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error) {
	var studio domain.Studio
	err := r.db.GetContext(ctx, &studio,
		"SELECT * FROM studios WHERE id = $1 AND tenant_id = $2", studioID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("studioRepo.GetByID: %w", err)
	}
	return &studio, nil
}

func (r *studioRepo) List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error) {
	where := "tenant_id = $1"
	if vacantOnly {
		where += " AND occupied = false"
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM studios WHERE "+where, tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("studioRepo.List count: %w", err)
	}

	var studios []domain.Studio
	err = r.db.SelectContext(ctx, &studios,
		"SELECT * FROM studios WHERE "+where+" ORDER BY name ASC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("studioRepo.List: %w", err)
	}
	return studios, total, nil
}

func (r *studioRepo) ListOccupied(ctx context.Context, tenantID uuid.UUID) ([]domain.Studio, error) {
	var studios []domain.Studio
	err := r.db.SelectContext(ctx, &studios,
		"SELECT * FROM studios WHERE tenant_id = $1 AND occupied = true ORDER BY name ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("studioRepo.ListOccupied: %w", err)
	}
	return studios, nil
}

func (r *studioRepo) Update(ctx context.Context, studio *domain.Studio) error {
	studio.UpdatedAt = time.Now().UTC()
	query := `UPDATE studios SET name = $1, floor = $2, monthly_rate = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`
	result, err := r.db.ExecContext(ctx, query,
		studio.Name, studio.Floor, studio.MonthlyRate, studio.UpdatedAt, studio.ID, studio.TenantID)
	if err != nil {
		return fmt.Errorf("studioRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a vacant studio. An occupied studio is refused.
func (r *studioRepo) Delete(ctx context.Context, tenantID, studioID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM studios WHERE id = $1 AND tenant_id = $2 AND occupied = false", studioID, tenantID)
	if err != nil {
		return fmt.Errorf("studioRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.missOrOccupied(ctx, tenantID, studioID, "studioRepo.Delete")
	}
	return nil
}

func (r *studioRepo) Claim(ctx context.Context, tenantID, studioID uuid.UUID, ref domain.ResidentRef) error {
	result, err := r.db.ExecContext(ctx, `UPDATE studios
		SET occupied = true, occupied_by = $1, occupant_variant = $2, updated_at = $3
		WHERE id = $4 AND tenant_id = $5 AND (occupied = false OR occupied_by = $1)`,
		ref.ID, ref.Variant, time.Now().UTC(), studioID, tenantID)
	if err != nil {
		return fmt.Errorf("studioRepo.Claim: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.missOrOccupied(ctx, tenantID, studioID, "studioRepo.Claim")
	}
	return nil
}

func (r *studioRepo) Release(ctx context.Context, tenantID, studioID, holder uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE studios
		SET occupied = false, occupied_by = NULL, occupant_variant = NULL, updated_at = $1
		WHERE id = $2 AND tenant_id = $3 AND occupied_by = $4`,
		time.Now().UTC(), studioID, tenantID, holder)
	if err != nil {
		return fmt.Errorf("studioRepo.Release: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var occupiedBy *uuid.UUID
	err = r.db.GetContext(ctx, &occupiedBy,
		"SELECT occupied_by FROM studios WHERE id = $1 AND tenant_id = $2", studioID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("studioRepo.Release lookup: %w", err)
	}
	if occupiedBy == nil {
		return nil
	}
	return domain.ErrStudioOccupied
}

// missOrOccupied explains why a conditional write matched no rows.
func (r *studioRepo) missOrOccupied(ctx context.Context, tenantID, studioID uuid.UUID, op string) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM studios WHERE id = $1 AND tenant_id = $2)", studioID, tenantID)
	if err != nil {
		return fmt.Errorf("%s lookup: %w", op, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStudioOccupied
}
