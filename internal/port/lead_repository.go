package port

import (
	"context"

	"github.com/google/uuid"

	"stayos/internal/domain"
)

// LeadRepository defines the contract for lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, tenantID, leadID uuid.UUID) error
}
