package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayos/internal/domain"
	"stayos/internal/service"
)

// DocumentHandler handles resident document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/residents/:variant/:id/documents
// @Summary Upload a resident document
// @Description Attach an ID scan, contract or receipt (PDF, JPG, PNG) to a resident
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param variant path string true "tourists or students"
// @Param id path string true "Resident ID"
// @Param file formData file true "Document to upload"
// @Success 201 {object} Response{data=domain.ResidentDocument}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 404 {object} ErrorResponseBody "Resident not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /residents/{variant}/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
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

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.documentService.Upload(c.Request.Context(), service.DocumentUploadInput{
		TenantID:   tenantID,
		Resident:   domain.ResidentRef{ID: residentID, Variant: variant},
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/residents/:variant/:id/documents
// @Summary List a resident's documents
// @Tags documents
// @Produce json
// @Param variant path string true "tourists or students"
// @Param id path string true "Resident ID"
// @Success 200 {object} Response{data=[]domain.ResidentDocument}
// @Security BearerAuth
// @Router /residents/{variant}/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
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

	docs, err := h.documentService.ListByResident(c.Request.Context(), tenantID, domain.ResidentRef{ID: residentID, Variant: variant})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, docs)
}

// Download handles GET /api/v1/documents/:id/download
// @Summary Get a presigned download URL
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{URL: url})
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}
