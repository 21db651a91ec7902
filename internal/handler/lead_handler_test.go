package handler_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stayos/internal/domain"
	"stayos/internal/handler"
	"stayos/internal/service"
	"stayos/mocks"
)

func leadRouter(a authed, h *handler.LeadHandler) *gin.Engine {
	r := a.engine()
	r.GET("/leads", h.List)
	r.POST("/leads", h.Create)
	r.GET("/leads/import/template", h.Template)
	r.POST("/leads/import", h.Import)
	r.GET("/leads/:id", h.GetByID)
	r.DELETE("/leads/:id", h.Delete)
	r.POST("/leads/:id/convert", h.Convert)
	return r
}

func TestLeadHandler_Convert(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(svc)
	leadID := uuid.New()
	tourist := domain.VariantTourist

	outcome := &service.ReconciliationOutcome{
		Resident:    &domain.Resident{ID: uuid.New(), Variant: domain.VariantTourist, Name: "Ana"},
		UnitWarning: &service.StepWarning{Step: "claim_studio", Message: "studio is occupied by another resident"},
	}
	svc.On("Convert", mock.Anything, a.tenantID, leadID, mock.MatchedBy(func(in service.ConvertLeadInput) bool {
		return in.StayType != nil && *in.StayType == tourist && in.CheckIn == "2026-03-01"
	})).Return(outcome, nil)

	w := do(leadRouter(a, h), http.MethodPost, "/leads/"+leadID.String()+"/convert", jsonBody(t, map[string]string{
		"stay_type": "tourist",
		"check_in":  "2026-03-01",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"unit_warning"`)
	assert.Contains(t, w.Body.String(), "claim_studio")
	svc.AssertExpectations(t)
}

func TestLeadHandler_Convert_EmptyBody(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(svc)
	leadID := uuid.New()
	svc.On("Convert", mock.Anything, a.tenantID, leadID, service.ConvertLeadInput{}).
		Return(&service.ReconciliationOutcome{Resident: &domain.Resident{ID: uuid.New()}}, nil)

	w := do(leadRouter(a, h), http.MethodPost, "/leads/"+leadID.String()+"/convert", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestLeadHandler_Convert_ContactOverrides(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(svc)
	leadID := uuid.New()
	svc.On("Convert", mock.Anything, a.tenantID, leadID, mock.MatchedBy(func(in service.ConvertLeadInput) bool {
		return in.Name != nil && *in.Name == "Ana Lima" &&
			in.Email != nil && *in.Email == "ana@example.com" && in.Phone == nil
	})).Return(&service.ReconciliationOutcome{Resident: &domain.Resident{ID: uuid.New()}}, nil)

	w := do(leadRouter(a, h), http.MethodPost, "/leads/"+leadID.String()+"/convert", jsonBody(t, map[string]string{
		"name":  "Ana Lima",
		"email": "ana@example.com",
	}))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(leadRouter(a, h), http.MethodPost, "/leads/"+leadID.String()+"/convert", jsonBody(t, map[string]string{
		"email": "not-an-email",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "Convert", 1)
}

func TestLeadHandler_Convert_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"lead missing", domain.ErrNotFound, http.StatusNotFound},
		{"in progress", domain.ErrConversionInProgress, http.StatusConflict},
		{"tourist without check-in", domain.ErrCheckInRequired, http.StatusBadRequest},
		{"resident insert failed", errors.New("insert failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAuthed(domain.RoleStaff)
			svc := new(mocks.MockLeadService)
			svc.On("Convert", mock.Anything, a.tenantID, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := do(leadRouter(a, handler.NewLeadHandler(svc)), http.MethodPost, "/leads/"+uuid.NewString()+"/convert", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLeadHandler_InvalidID(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)

	w := do(leadRouter(a, handler.NewLeadHandler(svc)), http.MethodGet, "/leads/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestLeadHandler_CreateAndList(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(svc)

	svc.On("Create", mock.Anything, a.tenantID, mock.MatchedBy(func(in service.CreateLeadInput) bool {
		return in.Name == "Ana" && in.Revenue.Equal(decimal.NewFromInt(900))
	})).Return(&domain.Lead{ID: uuid.New(), Name: "Ana"}, nil)
	svc.On("List", mock.Anything, a.tenantID, 0, 100).Return([]domain.Lead{{Name: "Ana"}}, 1, nil)

	r := leadRouter(a, h)
	w := do(r, http.MethodPost, "/leads", jsonBody(t, map[string]interface{}{"name": "Ana", "revenue": "900"}))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/leads?limit=100", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 100, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestLeadHandler_Import(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	id := uuid.New()
	svc.On("Import", mock.Anything, a.tenantID, mock.Anything).Return([]service.ImportResult{
		{Line: 2, LeadID: &id},
		{Line: 3, Error: "invalid revenue"},
	}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "leads.xlsx")
	require.NoError(t, err)
	_, _ = part.Write([]byte("PK-not-really"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/leads/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	leadRouter(a, handler.NewLeadHandler(svc)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid revenue")
	svc.AssertExpectations(t)
}

func TestLeadHandler_Import_Rejections(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockLeadService)
	r := leadRouter(a, handler.NewLeadHandler(svc))

	w := do(r, http.MethodPost, "/leads/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "leads.csv")
	_, _ = part.Write([]byte("name\nAna\n"))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/leads/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SPREADSHEET", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadHandler_Template(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	w := do(leadRouter(a, handler.NewLeadHandler(new(mocks.MockLeadService))), http.MethodGet, "/leads/import/template", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leads-template.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	header, err := f.GetCellValue("Leads", "A1")
	require.NoError(t, err)
	assert.Equal(t, "name", header)
}
