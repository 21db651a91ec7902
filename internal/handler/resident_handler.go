package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// BulkUpdateRequest is the request body for PUT /residents/:variant/bulk.
type BulkUpdateRequest struct {
	Items []service.BulkUpdateItem `json:"items" binding:"required,dive"`
}

// BulkDeleteRequest is the request body for POST /residents/bulk-delete.
type BulkDeleteRequest struct {
	Residents []domain.ResidentRef `json:"residents" binding:"required,dive"`
}

// ResidentHandler handles resident endpoints for both variants.
type ResidentHandler struct {
	residentService service.ResidentService
}

// NewResidentHandler creates a new ResidentHandler.
func NewResidentHandler(residentService service.ResidentService) *ResidentHandler {
	return &ResidentHandler{residentService: residentService}
}

// Create handles POST /api/v1/residents/:variant
// @Summary Create a resident directly (walk-in)
// @Description The path variant wins over any stay_type in the body.
// @Tags residents
// @Accept json
// @Produce json
// @Param variant path string true "tourists or students"
// @Param request body service.ConvertInput true "Resident details"
// @Success 201 {object} Response{data=service.ReconciliationOutcome}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /residents/{variant} [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}

	var input service.ConvertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.residentService.Create(c.Request.Context(), tenantID, variant, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, outcome)
}

// List handles GET /api/v1/residents/:variant
// @Summary List residents of one variant
// @Tags residents
// @Produce json
// @Param variant path string true "tourists or students"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {object} Response{data=[]domain.Resident,meta=PagMeta}
// @Security BearerAuth
// @Router /residents/{variant} [get]
func (h *ResidentHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	residents, total, err := h.residentService.List(c.Request.Context(), tenantID, variant, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, residents, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/residents/:variant/:id
// @Summary Get a resident
// @Tags residents
// @Produce json
// @Param variant path string true "tourists or students"
// @Param id path string true "Resident ID"
// @Success 200 {object} Response{data=domain.Resident}
// @Failure 404 {object} ErrorResponseBody "Resident not found"
// @Security BearerAuth
// @Router /residents/{variant}/{id} [get]
func (h *ResidentHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}
	residentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resident, err := h.residentService.GetByID(c.Request.Context(), tenantID, variant, residentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resident)
}

// Update handles PUT /api/v1/residents/:variant/:id
// @Summary Update a resident
// @Description Changing the studio releases the previous one and claims the new one.
// @Tags residents
// @Accept json
// @Produce json
// @Param variant path string true "tourists or students"
// @Param id path string true "Resident ID"
// @Param request body service.UpdateResidentInput true "Fields to change"
// @Success 200 {object} Response{data=service.ReconciliationOutcome}
// @Failure 404 {object} ErrorResponseBody "Resident not found"
// @Security BearerAuth
// @Router /residents/{variant}/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}
	residentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateResidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.residentService.Update(c.Request.Context(), tenantID, variant, residentID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}

// BulkUpdate handles PUT /api/v1/residents/:variant/bulk
// @Summary Update several residents
// @Tags residents
// @Accept json
// @Produce json
// @Param variant path string true "tourists or students"
// @Param request body BulkUpdateRequest true "Edits per resident"
// @Success 200 {object} Response{data=[]service.BulkUpdateResult}
// @Failure 400 {object} ErrorResponseBody "Empty selection"
// @Security BearerAuth
// @Router /residents/{variant}/bulk [put]
func (h *ResidentHandler) BulkUpdate(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	results, err := h.residentService.BulkUpdate(c.Request.Context(), tenantID, variant, req.Items)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}

// Delete handles DELETE /api/v1/residents/:variant/:id
// @Summary Delete a resident
// @Description Releases the resident's studio even if the delete itself fails.
// @Tags residents
// @Produce json
// @Param variant path string true "tourists or students"
// @Param id path string true "Resident ID"
// @Success 200 {object} Response{data=service.ReconciliationOutcome}
// @Failure 404 {object} ErrorResponseBody "Resident not found"
// @Security BearerAuth
// @Router /residents/{variant}/{id} [delete]
func (h *ResidentHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	variant, ok := parseVariantParam(c)
	if !ok {
		return
	}
	residentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	outcome, err := h.residentService.Delete(c.Request.Context(), tenantID, variant, residentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}

// BulkDelete handles POST /api/v1/residents/bulk-delete
// @Summary Delete several residents (admin only)
// @Tags residents
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Residents to delete"
// @Success 200 {object} Response{data=[]service.BulkDeleteResult}
// @Failure 403 {object} ErrorResponseBody "Not an admin"
// @Security BearerAuth
// @Router /residents/bulk-delete [post]
func (h *ResidentHandler) BulkDelete(c *gin.Context) {
	tenantID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	results, err := h.residentService.BulkDelete(c.Request.Context(), tenantID, role, req.Residents)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}

// Audit handles GET /api/v1/residents/audit
// @Summary Report studio occupancy drift
// @Description Read-only comparison of studio occupancy against resident assignments.
// @Tags residents
// @Produce json
// @Success 200 {object} Response{data=[]domain.OccupancyIssue}
// @Security BearerAuth
// @Router /residents/audit [get]
func (h *ResidentHandler) Audit(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	issues, err := h.residentService.AuditOccupancy(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issues)
}
