package port

import (
	"context"

	"github.com/google/uuid"

	"stayos/internal/domain"
)

// ResidentDocumentRepository defines the contract for resident document metadata.
type ResidentDocumentRepository interface {
	Create(ctx context.Context, doc *domain.ResidentDocument) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ResidentDocument, error)
	ListByResident(ctx context.Context, tenantID, residentID uuid.UUID) ([]domain.ResidentDocument, error)
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}
