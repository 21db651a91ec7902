package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stayos/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceReminder(ctx context.Context, reminder port.InvoiceReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}
