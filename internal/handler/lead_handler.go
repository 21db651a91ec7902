package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"stayos/internal/leadimport"
	"stayos/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeadHandler handles lead endpoints, including conversion and spreadsheet import.
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create handles POST /api/v1/leads
// @Summary Create a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param request body service.CreateLeadInput true "Lead details"
// @Success 201 {object} Response{data=domain.Lead}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, lead)
}

// List handles GET /api/v1/leads
// @Summary List leads
// @Tags leads
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {object} Response{data=[]domain.Lead,meta=PagMeta}
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	leads, total, err := h.leadService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, leads, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/leads/:id
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} Response{data=domain.Lead}
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	leadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), tenantID, leadID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Update handles PUT /api/v1/leads/:id
// @Summary Update a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body service.UpdateLeadInput true "Fields to change"
// @Success 200 {object} Response{data=domain.Lead}
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	leadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), tenantID, leadID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Delete handles DELETE /api/v1/leads/:id
// @Summary Delete a lead
// @Tags leads
// @Param id path string true "Lead ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	leadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), tenantID, leadID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "lead deleted"})
}

// Convert handles POST /api/v1/leads/:id/convert
// @Summary Convert a lead into a resident
// @Description Creates the resident, then best-effort claims the studio, raises the first invoice and deletes the lead. Step failures are reported as warnings.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body ConvertLeadRequest false "Conversion overrides"
// @Success 201 {object} Response{data=service.ReconciliationOutcome}
// @Failure 400 {object} ErrorResponseBody "Invalid dates or stay type"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Failure 409 {object} ErrorResponseBody "Conversion already in progress"
// @Security BearerAuth
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	leadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// An empty body converts with the lead's own values.
	var input service.ConvertLeadInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.leadService.Convert(c.Request.Context(), tenantID, leadID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, outcome)
}

// Import handles POST /api/v1/leads/import
// @Summary Import leads from a spreadsheet
// @Tags leads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Lead spreadsheet (.xlsx)"
// @Success 200 {object} Response{data=[]service.ImportResult}
// @Failure 400 {object} ErrorResponseBody "Missing or invalid spreadsheet"
// @Security BearerAuth
// @Router /leads/import [post]
func (h *LeadHandler) Import(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		RespondError(c, http.StatusBadRequest, "INVALID_SPREADSHEET", "only .xlsx files are accepted")
		return
	}

	results, err := h.leadService.Import(c.Request.Context(), tenantID, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}

// Template handles GET /api/v1/leads/import/template
// @Summary Download the lead import template
// @Tags leads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /leads/import/template [get]
func (h *LeadHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="leads-template.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := leadimport.WriteTemplate(c.Writer); err != nil {
		HandleError(c, err)
	}
}
