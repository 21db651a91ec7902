package port

import (
	"context"

	"github.com/google/uuid"

	"stayos/internal/domain"
)

// StudioRepository defines the contract for studio persistence.
// Occupancy only changes through Claim and Release; Update never touches it.
type StudioRepository interface {
	Create(ctx context.Context, studio *domain.Studio) error
	GetByID(ctx context.Context, tenantID, studioID uuid.UUID) (*domain.Studio, error)
	List(ctx context.Context, tenantID uuid.UUID, vacantOnly bool, offset, limit int) ([]domain.Studio, int, error)
	ListOccupied(ctx context.Context, tenantID uuid.UUID) ([]domain.Studio, error)
	Update(ctx context.Context, studio *domain.Studio) error
	Delete(ctx context.Context, tenantID, studioID uuid.UUID) error

	// Claim marks the studio occupied by ref. It succeeds when the studio is
	// vacant or already held by ref, and fails with domain.ErrStudioOccupied
	// when another resident holds it.
	Claim(ctx context.Context, tenantID, studioID uuid.UUID, ref domain.ResidentRef) error
	// Release marks the studio vacant if it is held by holder. Releasing a
	// vacant studio is a no-op; a studio held by someone else is left alone
	// and domain.ErrStudioOccupied is returned.
	Release(ctx context.Context, tenantID, studioID, holder uuid.UUID) error
}
