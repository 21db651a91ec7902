package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input service.DocumentUploadInput) (*domain.ResidentDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResidentDocument), args.Error(1)
}

func (m *MockDocumentService) ListByResident(ctx context.Context, tenantID uuid.UUID, ref domain.ResidentRef) ([]domain.ResidentDocument, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResidentDocument), args.Error(1)
}

func (m *MockDocumentService) GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, docID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	args := m.Called(ctx, tenantID, docID)
	return args.Error(0)
}
