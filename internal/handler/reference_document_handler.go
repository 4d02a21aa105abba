package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardcomply/internal/domain"
	"cardcomply/internal/service"
)

// ReferenceDocumentHandler handles issuer reference document endpoints.
type ReferenceDocumentHandler struct {
	referenceService service.ReferenceDocumentService
}

// NewReferenceDocumentHandler creates a new ReferenceDocumentHandler.
func NewReferenceDocumentHandler(referenceService service.ReferenceDocumentService) *ReferenceDocumentHandler {
	return &ReferenceDocumentHandler{referenceService: referenceService}
}

// Upload handles POST /api/v1/reference-documents
// @Summary Upload a reference document
// @Description Upload issuer brand guidelines, compliance rules or legal requirements (txt, md, html, xlsx).
// @Description Text is extracted asynchronously; the document is used in analysis once its status is completed.
// @Tags reference-documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Reference file"
// @Param issuer formData string false "Issuer key" default(amex)
// @Param documentType formData string true "brand-guidelines, compliance-rules or legal-requirements"
// @Param name formData string false "Display name (defaults to the file name)"
// @Success 201 {object} Response{data=domain.ReferenceDocument} "Document accepted"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /reference-documents [post]
func (h *ReferenceDocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.referenceService.Upload(c.Request.Context(), service.ReferenceUploadInput{
		Issuer:       c.PostForm("issuer"),
		Name:         c.PostForm("name"),
		DocumentType: domain.ReferenceDocumentType(strings.TrimSpace(c.PostForm("documentType"))),
		File:         file,
		Header:       header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/reference-documents
// @Summary List reference documents
// @Description List an issuer's reference documents with pagination
// @Tags reference-documents
// @Produce json
// @Param issuer query string false "Issuer key" default(amex)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ReferenceDocument,meta=PagMeta} "List of documents"
// @Router /reference-documents [get]
func (h *ReferenceDocumentHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	docs, total, err := h.referenceService.List(c.Request.Context(), c.Query("issuer"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/reference-documents/:id
// @Summary Get a reference document
// @Description Get reference document metadata, extracted text and a presigned download URL
// @Tags reference-documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=ReferenceDocumentResponse} "Document details"
// @Failure 400 {object} ErrorResponseBody "Invalid document ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /reference-documents/{id} [get]
func (h *ReferenceDocumentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.referenceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	// The document is still useful without a download link.
	url, err := h.referenceService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		url = ""
	}

	RespondOK(c, ReferenceDocumentResponse{ReferenceDocument: doc, DownloadURL: url})
}

// Delete handles DELETE /api/v1/reference-documents/:id
// @Summary Delete a reference document
// @Description Delete a reference document and its stored file
// @Tags reference-documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid document ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /reference-documents/{id} [delete]
func (h *ReferenceDocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.referenceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "reference document deleted"})
}

// Count handles GET /api/v1/reference-documents/count
// @Summary Count usable reference documents
// @Description Number of reference documents with completed text extraction, across all issuers
// @Tags reference-documents
// @Produce json
// @Success 200 {object} Response{data=CountResponse} "Document count"
// @Router /reference-documents/count [get]
func (h *ReferenceDocumentHandler) Count(c *gin.Context) {
	n, err := h.referenceService.CountCompleted(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, CountResponse{Count: n})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
