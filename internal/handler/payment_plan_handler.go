package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayos/internal/service"
)

// PaymentPlanHandler handles payment plan endpoints.
type PaymentPlanHandler struct {
	planService service.PaymentPlanService
}

// NewPaymentPlanHandler creates a new PaymentPlanHandler.
func NewPaymentPlanHandler(planService service.PaymentPlanService) *PaymentPlanHandler {
	return &PaymentPlanHandler{planService: planService}
}

// Create handles POST /api/v1/payment-plans
// @Summary Create a payment plan
// @Tags payment-plans
// @Accept json
// @Produce json
// @Param request body service.CreatePaymentPlanInput true "Plan details"
// @Success 201 {object} Response{data=domain.PaymentPlan}
// @Security BearerAuth
// @Router /payment-plans [post]
func (h *PaymentPlanHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreatePaymentPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, plan)
}

// List handles GET /api/v1/payment-plans
// @Summary List payment plans
// @Tags payment-plans
// @Produce json
// @Success 200 {object} Response{data=[]domain.PaymentPlan}
// @Security BearerAuth
// @Router /payment-plans [get]
func (h *PaymentPlanHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	plans, err := h.planService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plans)
}

// GetByID handles GET /api/v1/payment-plans/:id
// @Summary Get a payment plan
// @Tags payment-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} Response{data=domain.PaymentPlan}
// @Failure 404 {object} ErrorResponseBody "Plan not found"
// @Security BearerAuth
// @Router /payment-plans/{id} [get]
func (h *PaymentPlanHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), tenantID, planID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// Update handles PUT /api/v1/payment-plans/:id
// @Summary Update a payment plan
// @Tags payment-plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body service.UpdatePaymentPlanInput true "Fields to change"
// @Success 200 {object} Response{data=domain.PaymentPlan}
// @Security BearerAuth
// @Router /payment-plans/{id} [put]
func (h *PaymentPlanHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdatePaymentPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), tenantID, planID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// Delete handles DELETE /api/v1/payment-plans/:id
// @Summary Delete a payment plan
// @Tags payment-plans
// @Param id path string true "Plan ID"
// @Success 200 {object} Response
// @Security BearerAuth
// @Router /payment-plans/{id} [delete]
func (h *PaymentPlanHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), tenantID, planID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "payment plan deleted"})
}
