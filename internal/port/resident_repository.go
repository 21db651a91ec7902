package port

import (
	"context"

	"github.com/google/uuid"

	"stayos/internal/domain"
)

// ResidentRepository persists tourists and students. The variant selects the
// backing table; Create reads it from resident.Variant.
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	GetByID(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) (*domain.Resident, error)
	List(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, offset, limit int) ([]domain.Resident, int, error)
	// ListAssigned returns every resident of either variant with a non-null studio assignment.
	ListAssigned(ctx context.Context, tenantID uuid.UUID) ([]domain.Resident, error)
	Update(ctx context.Context, resident *domain.Resident) error
	ClearStudio(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) error
	Delete(ctx context.Context, tenantID uuid.UUID, variant domain.Variant, residentID uuid.UUID) error
}
