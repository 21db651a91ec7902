package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayos/internal/csvexport"
	"stayos/internal/domain"
	"stayos/internal/service"
)

const exportPageSize = 100

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	currency       string
}

// NewInvoiceHandler creates a new InvoiceHandler. currency labels CSV exports.
func NewInvoiceHandler(invoiceService service.InvoiceService, currency string) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, currency: currency}
}

// parseInvoiceFilters reads the status and resident_id query filters,
// writing a 400 when either is malformed.
func parseInvoiceFilters(c *gin.Context) (domain.InvoiceFilters, bool) {
	var filters domain.InvoiceFilters
	if s := c.Query("status"); s != "" {
		status := domain.InvoiceStatus(s)
		if !domain.ValidInvoiceStatuses[status] {
			RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be pending, paid, overdue or cancelled")
			return filters, false
		}
		filters.Status = status
	}
	if s := c.Query("resident_id"); s != "" {
		residentID, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid resident_id")
			return filters, false
		}
		filters.ResidentID = &residentID
	}
	return filters, true
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param status query string false "pending, paid, overdue or cancelled"
// @Param resident_id query string false "Filter by resident"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	filters, ok := parseInvoiceFilters(c)
	if !ok {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.Invoice}
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// MarkPaid handles POST /api/v1/invoices/:id/pay
// @Summary Mark an invoice paid
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.Invoice}
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not pending"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Cancel handles POST /api/v1/invoices/:id/cancel
// @Summary Cancel an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.Invoice}
// @Failure 409 {object} ErrorResponseBody "Invoice is not pending"
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Remind handles POST /api/v1/invoices/:id/remind
// @Summary Email a payment reminder
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response
// @Failure 409 {object} ErrorResponseBody "Invoice is not pending"
// @Failure 422 {object} ErrorResponseBody "Resident has no email"
// @Security BearerAuth
// @Router /invoices/{id}/remind [post]
func (h *InvoiceHandler) Remind(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.SendReminder(c.Request.Context(), tenantID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "reminder sent"})
}

// Export handles GET /api/v1/invoices/export
// @Summary Export invoices as CSV
// @Description Streams every invoice matching the filters. The file starts with a UTF-8 BOM for Excel.
// @Tags invoices
// @Produce text/csv
// @Param status query string false "pending, paid, overdue or cancelled"
// @Param resident_id query string false "Filter by resident"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filters, ok := parseInvoiceFilters(c)
	if !ok {
		return
	}

	// Fetch the first page before writing headers so a failure still gets a JSON error.
	ctx := c.Request.Context()
	page, total, err := h.invoiceService.List(ctx, tenantID, filters, 0, exportPageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename("invoices", time.Now())))
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer, h.currency)
	if err := w.WriteHeader(); err != nil {
		zap.L().Error("invoice export: header", zap.Error(err))
		return
	}
	for offset := 0; ; {
		if err := w.WriteInvoices(page); err != nil {
			zap.L().Error("invoice export: rows", zap.Error(err))
			return
		}
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
		page, _, err = h.invoiceService.List(ctx, tenantID, filters, offset, exportPageSize)
		if err != nil {
			zap.L().Error("invoice export: page fetch failed mid-stream",
				zap.String("tenant_id", tenantID.String()), zap.Int("offset", offset), zap.Error(err))
			break
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		zap.L().Error("invoice export: flush", zap.Error(err))
	}
}
