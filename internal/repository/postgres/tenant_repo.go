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

const tenantColumns = "id, name, slug, is_active, created_at, updated_at"

type tenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a PostgreSQL-backed TenantRepository.
func NewTenantRepo(db *sqlx.DB) port.TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	tenant.ID = uuid.New()
	tenant.CreatedAt = time.Now().UTC()
	tenant.UpdatedAt = tenant.CreatedAt

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO tenants (`+tenantColumns+`)
		VALUES (:id, :name, :slug, :is_active, :created_at, :updated_at)`, tenant)
	switch {
	case isUniqueViolation(err, "tenants_slug_key"):
		return domain.ErrDuplicateTenantSlug
	case err != nil:
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return r.getOne(ctx, "tenantRepo.GetByID", "id = $1", id)
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, "tenantRepo.GetBySlug", "slug = $1", slug)
}

func (r *tenantRepo) getOne(ctx context.Context, op, where string, arg interface{}) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, "SELECT "+tenantColumns+" FROM tenants WHERE "+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &tenant, nil
}
