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

const userColumns = "id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at"

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a PostgreSQL-backed UserRepository. Every lookup is
// scoped by tenant.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if !domain.ValidUserRoles[user.Role] {
		return fmt.Errorf("userRepo.Create: unknown role %q", user.Role)
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES (:id, :tenant_id, :email, :password_hash, :full_name, :role, :is_active,
			:created_at, :updated_at)`, user)
	switch {
	case isUniqueViolation(err, "users_tenant_id_email_key"):
		return domain.ErrDuplicateEmail
	case err != nil:
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByID", "id = $2", tenantID, userID)
}

func (r *userRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByEmail", "email = $2", tenantID, email)
}

func (r *userRepo) getOne(ctx context.Context, op, where string, tenantID uuid.UUID, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT "+userColumns+" FROM users WHERE tenant_id = $1 AND "+where, tenantID, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
