package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
)

// MockResidentDocumentRepo is a mock implementation of port.ResidentDocumentRepository.
type MockResidentDocumentRepo struct {
	mock.Mock
}

func (m *MockResidentDocumentRepo) Create(ctx context.Context, doc *domain.ResidentDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockResidentDocumentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ResidentDocument, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResidentDocument), args.Error(1)
}

func (m *MockResidentDocumentRepo) ListByResident(ctx context.Context, tenantID, residentID uuid.UUID) ([]domain.ResidentDocument, error) {
	args := m.Called(ctx, tenantID, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResidentDocument), args.Error(1)
}

func (m *MockResidentDocumentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	args := m.Called(ctx, tenantID, docID)
	return args.Error(0)
}
