package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayos/internal/service"
)

// StudioHandler handles studio endpoints.
type StudioHandler struct {
	studioService service.StudioService
}

// NewStudioHandler creates a new StudioHandler.
func NewStudioHandler(studioService service.StudioService) *StudioHandler {
	return &StudioHandler{studioService: studioService}
}

// Create handles POST /api/v1/studios
// @Summary Create a studio
// @Tags studios
// @Accept json
// @Produce json
// @Param request body service.CreateStudioInput true "Studio details"
// @Success 201 {object} Response{data=domain.Studio}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /studios [post]
func (h *StudioHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreateStudioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	studio, err := h.studioService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, studio)
}

// List handles GET /api/v1/studios
// @Summary List studios
// @Tags studios
// @Produce json
// @Param vacant query bool false "Only vacant studios"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {object} Response{data=[]domain.Studio,meta=PagMeta}
// @Security BearerAuth
// @Router /studios [get]
func (h *StudioHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	vacantOnly := c.Query("vacant") == "true"

	studios, total, err := h.studioService.List(c.Request.Context(), tenantID, vacantOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, studios, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/studios/:id
// @Summary Get a studio
// @Tags studios
// @Produce json
// @Param id path string true "Studio ID"
// @Success 200 {object} Response{data=domain.Studio}
// @Failure 404 {object} ErrorResponseBody "Studio not found"
// @Security BearerAuth
// @Router /studios/{id} [get]
func (h *StudioHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	studioID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	studio, err := h.studioService.GetByID(c.Request.Context(), tenantID, studioID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, studio)
}

// Update handles PUT /api/v1/studios/:id
// @Summary Update a studio
// @Tags studios
// @Accept json
// @Produce json
// @Param id path string true "Studio ID"
// @Param request body service.UpdateStudioInput true "Fields to change"
// @Success 200 {object} Response{data=domain.Studio}
// @Failure 404 {object} ErrorResponseBody "Studio not found"
// @Security BearerAuth
// @Router /studios/{id} [put]
func (h *StudioHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	studioID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateStudioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	studio, err := h.studioService.Update(c.Request.Context(), tenantID, studioID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, studio)
}

// Delete handles DELETE /api/v1/studios/:id
// @Summary Delete a vacant studio
// @Tags studios
// @Param id path string true "Studio ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody "Studio not found"
// @Failure 409 {object} ErrorResponseBody "Studio is occupied"
// @Security BearerAuth
// @Router /studios/{id} [delete]
func (h *StudioHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	studioID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.studioService.Delete(c.Request.Context(), tenantID, studioID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "studio deleted"})
}

// Release handles POST /api/v1/studios/:id/release
// @Summary Mark a studio vacant
// @Description Clears the occupant's assignment and frees the studio.
// @Tags studios
// @Produce json
// @Param id path string true "Studio ID"
// @Success 200 {object} Response{data=domain.Studio}
// @Failure 404 {object} ErrorResponseBody "Studio not found"
// @Security BearerAuth
// @Router /studios/{id}/release [post]
func (h *StudioHandler) Release(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	studioID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	studio, err := h.studioService.Release(c.Request.Context(), tenantID, studioID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, studio)
}
