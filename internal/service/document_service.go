package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayos/internal/config"
	"stayos/internal/domain"
	"stayos/internal/port"
)

// DocumentUploadInput is the DTO for uploading a resident document.
type DocumentUploadInput struct {
	TenantID   uuid.UUID
	Resident   domain.ResidentRef
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// DocumentService manages files attached to residents (IDs, contracts, receipts).
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.ResidentDocument, error)
	ListByResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) ([]domain.ResidentDocument, error)
	GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error)
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}

type documentService struct {
	docRepo      port.ResidentDocumentRepository
	residentRepo port.ResidentRepository
	storage      port.ObjectStorage
	cfg          *config.S3Config
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.ResidentDocumentRepository,
	residentRepo port.ResidentRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	logger *zap.Logger,
) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		residentRepo: residentRepo,
		storage:      storage,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.ResidentDocument, error) {
	if _, err := s.residentRepo.GetByID(ctx, input.TenantID, input.Resident.Variant, input.Resident.ID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	docType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes; the extension alone is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if detected, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok || detected != docType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docID := uuid.New()
	doc := &domain.ResidentDocument{
		ID:              docID,
		TenantID:        input.TenantID,
		ResidentID:      input.Resident.ID,
		ResidentVariant: input.Resident.Variant,
		FileName:        input.Header.Filename,
		DocumentType:    docType,
		FileSize:        input.Header.Size,
		S3Bucket:        s.cfg.Bucket,
		S3Key:           fmt.Sprintf("tenants/%s/residents/%s/%s.%s", input.TenantID, input.Resident.ID, docID, ext),
		ContentType:     domain.AllowedDocumentTypes[docType],
		UploadedBy:      input.UploadedBy,
	}

	log := s.logger.With(zap.Stringer("document_id", docID), zap.Stringer("resident_id", input.Resident.ID))
	_, err = s.storage.Put(ctx, port.PutObjectInput{
		Bucket:      doc.S3Bucket,
		Key:         doc.S3Key,
		Body:        input.File,
		ContentType: doc.ContentType,
		Size:        doc.FileSize,
		Metadata: map[string]string{
			"tenant-id":        input.TenantID.String(),
			"resident-id":      input.Resident.ID.String(),
			"resident-variant": string(input.Resident.Variant),
		},
	})
	if err != nil {
		log.Error("documentService.Upload: storage put failed", zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); delErr != nil {
			log.Warn("documentService.Upload: orphaned object left in storage", zap.Error(delErr))
		}
		return nil, fmt.Errorf("creating document metadata: %w", err)
	}

	log.Info("documentService.Upload: stored", zap.Int64("bytes", doc.FileSize))
	return doc, nil
}

func (s *documentService) ListByResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) ([]domain.ResidentDocument, error) {
	if _, err := s.residentRepo.GetByID(ctx, tenantID, ref.Variant, ref.ID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByResident(ctx, tenantID, ref.ID)
}

func (s *documentService) GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, port.PresignInput{
		Bucket:       doc.S3Bucket,
		Key:          doc.S3Key,
		DownloadName: doc.FileName,
		Expiry:       time.Duration(s.cfg.PresignExpiry) * time.Second,
	})
}

func (s *documentService) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		s.logger.Error("documentService.Delete: storage delete failed",
			zap.Stringer("document_id", docID), zap.Error(err))
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.docRepo.Delete(ctx, tenantID, docID)
}
