package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stayos/internal/config"
	"stayos/internal/domain"
	"stayos/internal/port"
	"stayos/internal/repository/memory"
	"stayos/internal/service"
	"stayos/mocks"
)

func billing() config.BillingConfig {
	return config.BillingConfig{InvoiceDueDays: 7, Currency: "GBP"}
}

func TestInvoiceService_CreateForResident_DueDate(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewInvoiceService(store.Invoices(), store.Residents(), new(mocks.MockEmailSender), billing(), zap.NewNop())
	tenantID := uuid.New()

	checkIn := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	inv, err := svc.CreateForResident(context.Background(), &domain.Resident{
		ID: uuid.New(), TenantID: tenantID, Variant: domain.VariantTourist,
		Revenue: decimal.RequireFromString("240.50"), CheckIn: &checkIn,
	})
	require.NoError(t, err)
	assert.True(t, inv.DueDate.Equal(checkIn))
	assert.Equal(t, domain.InvoiceStatusPending, inv.Status)
	assert.Equal(t, "240.5", inv.Amount.String())

	inv, err = svc.CreateForResident(context.Background(), &domain.Resident{
		ID: uuid.New(), TenantID: tenantID, Variant: domain.VariantStudent,
	})
	require.NoError(t, err)
	today := time.Now().UTC()
	want := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7)
	assert.True(t, inv.DueDate.Equal(want), "due %s, want %s", inv.DueDate, want)
}

func TestInvoiceService_Transitions(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewInvoiceService(store.Invoices(), store.Residents(), new(mocks.MockEmailSender), billing(), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	inv, err := svc.CreateForResident(ctx, &domain.Resident{ID: uuid.New(), TenantID: tenantID, Variant: domain.VariantStudent})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, tenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	_, err = svc.Cancel(ctx, tenantID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotPending)

	_, err = svc.MarkPaid(ctx, uuid.New(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_MarkOverdue(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewInvoiceService(store.Invoices(), store.Residents(), new(mocks.MockEmailSender), billing(), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	past := time.Now().UTC().AddDate(0, 0, -3)
	future := time.Now().UTC().AddDate(0, 0, 30)
	_, err := svc.CreateForResident(ctx, &domain.Resident{ID: uuid.New(), TenantID: tenantID, Variant: domain.VariantTourist, CheckIn: &past})
	require.NoError(t, err)
	_, err = svc.CreateForResident(ctx, &domain.Resident{ID: uuid.New(), TenantID: tenantID, Variant: domain.VariantTourist, CheckIn: &future})
	require.NoError(t, err)

	n, err := svc.MarkOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	overdue, total, err := svc.List(ctx, tenantID, domain.InvoiceFilters{Status: domain.InvoiceStatusOverdue}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	// Overdue invoices can still be paid.
	_, err = svc.MarkPaid(ctx, tenantID, overdue[0].ID)
	assert.NoError(t, err)
}

func TestInvoiceService_SendReminder(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	residentID := uuid.New()
	invoiceID := uuid.New()
	due := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	invoice := &domain.Invoice{
		ID: invoiceID, TenantID: tenantID, ResidentID: residentID, ResidentVariant: domain.VariantStudent,
		Amount: decimal.NewFromInt(1200), DueDate: due, Status: domain.InvoiceStatusPending,
	}

	t.Run("sends to the resident", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		residentRepo := new(mocks.MockResidentRepo)
		sender := new(mocks.MockEmailSender)
		svc := service.NewInvoiceService(invoiceRepo, residentRepo, sender, billing(), zap.NewNop())

		invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(invoice, nil)
		residentRepo.On("GetByID", mock.Anything, tenantID, domain.VariantStudent, residentID).
			Return(&domain.Resident{ID: residentID, Name: "Mo", Email: "mo@example.com"}, nil)
		sender.On("SendInvoiceReminder", mock.Anything, port.InvoiceReminder{
			InvoiceID: invoiceID,
			ToEmail:   "mo@example.com",
			ToName:    "Mo",
			Amount:    invoice.Amount,
			Currency:  "GBP",
			DueDate:   "2025-10-01",
		}).Return(nil)

		require.NoError(t, svc.SendReminder(ctx, tenantID, invoiceID))
		sender.AssertExpectations(t)
	})

	t.Run("resident without email", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		residentRepo := new(mocks.MockResidentRepo)
		sender := new(mocks.MockEmailSender)
		svc := service.NewInvoiceService(invoiceRepo, residentRepo, sender, billing(), zap.NewNop())

		invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(invoice, nil)
		residentRepo.On("GetByID", mock.Anything, tenantID, domain.VariantStudent, residentID).
			Return(&domain.Resident{ID: residentID, Name: "Mo"}, nil)

		assert.ErrorIs(t, svc.SendReminder(ctx, tenantID, invoiceID), domain.ErrNoResidentEmail)
		sender.AssertNotCalled(t, "SendInvoiceReminder", mock.Anything, mock.Anything)
	})

	t.Run("paid invoice", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		svc := service.NewInvoiceService(invoiceRepo, new(mocks.MockResidentRepo), new(mocks.MockEmailSender), billing(), zap.NewNop())
		paid := *invoice
		paid.Status = domain.InvoiceStatusPaid
		invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(&paid, nil)

		assert.ErrorIs(t, svc.SendReminder(ctx, tenantID, invoiceID), domain.ErrInvoiceNotPending)
	})

	t.Run("provider failure", func(t *testing.T) {
		invoiceRepo := new(mocks.MockInvoiceRepo)
		residentRepo := new(mocks.MockResidentRepo)
		sender := new(mocks.MockEmailSender)
		svc := service.NewInvoiceService(invoiceRepo, residentRepo, sender, billing(), zap.NewNop())

		invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(invoice, nil)
		residentRepo.On("GetByID", mock.Anything, tenantID, domain.VariantStudent, residentID).
			Return(&domain.Resident{ID: residentID, Name: "Mo", Email: "mo@example.com"}, nil)
		sender.On("SendInvoiceReminder", mock.Anything, mock.Anything).Return(errors.New("throttled"))

		assert.Error(t, svc.SendReminder(ctx, tenantID, invoiceID))
	})
}
