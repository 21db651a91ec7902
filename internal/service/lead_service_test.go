package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/repository/memory"
	"stayos/internal/service"
	"stayos/mocks"
)

func TestLeadService_Convert_DefaultsFromLead(t *testing.T) {
	repo := new(mocks.MockLeadRepo)
	recon := new(mocks.MockReconciler)
	svc := service.NewLeadService(repo, recon, zap.NewNop())

	tenantID := uuid.New()
	studioID := uuid.New()
	lead := &domain.Lead{
		ID: uuid.New(), TenantID: tenantID, Name: "Noor", Email: "noor@example.com",
		DurationLabel: "3 days", AssignedStudioID: &studioID, Revenue: decimal.NewFromInt(270),
	}
	repo.On("GetByID", mock.Anything, tenantID, lead.ID).Return(lead, nil)
	outcome := &service.ReconciliationOutcome{Resident: &domain.Resident{ID: uuid.New()}}
	recon.On("Convert", mock.Anything, tenantID, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.LeadID != nil && *in.LeadID == lead.ID &&
			in.Name == "Noor" && in.Email == "noor@example.com" &&
			in.DurationLabel == "3 days" && in.StudioID != nil && *in.StudioID == studioID &&
			in.Revenue.Equal(decimal.NewFromInt(270)) && in.CheckIn == "2025-08-01"
	})).Return(outcome, nil)

	got, err := svc.Convert(context.Background(), tenantID, lead.ID, service.ConvertLeadInput{CheckIn: "2025-08-01"})
	require.NoError(t, err)
	assert.Same(t, outcome, got)
	recon.AssertExpectations(t)
}

func TestLeadService_Convert_Overrides(t *testing.T) {
	repo := new(mocks.MockLeadRepo)
	recon := new(mocks.MockReconciler)
	svc := service.NewLeadService(repo, recon, zap.NewNop())

	tenantID := uuid.New()
	lead := &domain.Lead{
		ID: uuid.New(), TenantID: tenantID, Name: "Noor", Email: "noor@example.com",
		Phone: "0700 000000", DurationLabel: "3 days",
	}
	repo.On("GetByID", mock.Anything, tenantID, lead.ID).Return(lead, nil)

	studioID := uuid.New()
	name, email, phone := "Noor Haddad", "noor.h@example.com", "0711 111111"
	label := "1 year"
	revenue := decimal.NewFromInt(9600)
	recon.On("Convert", mock.Anything, tenantID, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.Name == name && in.Email == email && in.Phone == phone &&
			in.DurationLabel == "1 year" && in.StudioID != nil && *in.StudioID == studioID &&
			in.Revenue.Equal(revenue)
	})).Return(&service.ReconciliationOutcome{}, nil)

	_, err := svc.Convert(context.Background(), tenantID, lead.ID, service.ConvertLeadInput{
		Name: &name, Email: &email, Phone: &phone,
		StudioID: &studioID, DurationLabel: &label, Revenue: &revenue,
	})
	require.NoError(t, err)
	recon.AssertExpectations(t)
}

func TestLeadService_Convert_MissingLead(t *testing.T) {
	repo := new(mocks.MockLeadRepo)
	recon := new(mocks.MockReconciler)
	svc := service.NewLeadService(repo, recon, zap.NewNop())

	tenantID, leadID := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, leadID).Return(nil, domain.ErrNotFound)

	_, err := svc.Convert(context.Background(), tenantID, leadID, service.ConvertLeadInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	recon.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadService_Import(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewLeadService(store.Leads(), new(mocks.MockReconciler), zap.NewNop())
	tenantID := uuid.New()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "email", "duration", "revenue"},
		{"Olu", "olu@example.com", "2 days", "150"},
		{"Pia", "", "40 weeks", "not-a-number"},
		{"Quin", "", "1 year", "8,000"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)

	results, err := svc.Import(context.Background(), tenantID, buf)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0].LeadID)
	assert.Empty(t, results[0].Error)
	assert.Nil(t, results[1].LeadID)
	assert.Contains(t, results[1].Error, "revenue")
	assert.NotNil(t, results[2].LeadID)

	leads, total, err := svc.List(context.Background(), tenantID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, l := range leads {
		assert.Equal(t, domain.LeadSourceImport, l.Source)
		assert.Equal(t, tenantID, l.TenantID)
	}
}

func TestLeadService_Import_NotASpreadsheet(t *testing.T) {
	svc := service.NewLeadService(new(mocks.MockLeadRepo), new(mocks.MockReconciler), zap.NewNop())
	_, err := svc.Import(context.Background(), uuid.New(), bytes.NewBufferString("name,email\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
}

func TestLeadService_Update(t *testing.T) {
	store := memory.NewStore()
	svc := service.NewLeadService(store.Leads(), new(mocks.MockReconciler), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	lead, err := svc.Create(ctx, tenantID, service.CreateLeadInput{Name: "Rae", DurationLabel: "2 days"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadSourceManual, lead.Source)

	label := "6 months"
	updated, err := svc.Update(ctx, tenantID, lead.ID, service.UpdateLeadInput{DurationLabel: &label})
	require.NoError(t, err)
	assert.Equal(t, "6 months", updated.DurationLabel)
	assert.Equal(t, "Rae", updated.Name)

	_, err = svc.Update(ctx, uuid.New(), lead.ID, service.UpdateLeadInput{DurationLabel: &label})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
