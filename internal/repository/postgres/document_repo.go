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

type residentDocumentRepo struct {
	db *sqlx.DB
}

// NewResidentDocumentRepo creates a new PostgreSQL-backed ResidentDocumentRepository.
func NewResidentDocumentRepo(db *sqlx.DB) port.ResidentDocumentRepository {
	return &residentDocumentRepo{db: db}
}

func (r *residentDocumentRepo) Create(ctx context.Context, doc *domain.ResidentDocument) error {
	doc.CreatedAt = time.Now().UTC()

	query := `INSERT INTO resident_documents (id, tenant_id, resident_id, resident_variant,
		file_name, document_type, file_size, s3_bucket, s3_key, content_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.ResidentID, doc.ResidentVariant,
		doc.FileName, doc.DocumentType, doc.FileSize, doc.S3Bucket, doc.S3Key,
		doc.ContentType, doc.UploadedBy, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("residentDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *residentDocumentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ResidentDocument, error) {
	var doc domain.ResidentDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM resident_documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("residentDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *residentDocumentRepo) ListByResident(ctx context.Context, tenantID, residentID uuid.UUID) ([]domain.ResidentDocument, error) {
	var docs []domain.ResidentDocument
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM resident_documents WHERE tenant_id = $1 AND resident_id = $2 ORDER BY created_at DESC",
		tenantID, residentID)
	if err != nil {
		return nil, fmt.Errorf("residentDocumentRepo.ListByResident: %w", err)
	}
	return docs, nil
}

func (r *residentDocumentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM resident_documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		return fmt.Errorf("residentDocumentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
