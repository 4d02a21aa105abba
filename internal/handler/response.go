package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardcomply/internal/domain"
	"cardcomply/internal/middleware"
)

// APIResponse is the standard envelope for management API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AnalysisErrorResponse is the failure body of the analysis endpoint.
type AnalysisErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"compliance analysis is not configured; set an analysis API key"`
	Code    string `json:"code" example:"ANALYSIS_NOT_CONFIGURED"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrAnalysisNotConfigured):
		return http.StatusServiceUnavailable, "ANALYSIS_NOT_CONFIGURED", "compliance analysis is not configured; set an analysis API key"
	case errors.Is(err, domain.ErrReferenceDocumentNotFound):
		return http.StatusNotFound, "REFERENCE_DOCUMENT_NOT_FOUND", "reference document not found"
	case errors.Is(err, domain.ErrAnalysisRunNotFound):
		return http.StatusNotFound, "ANALYSIS_NOT_FOUND", "analysis run not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrShareTokenInvalid):
		return http.StatusUnauthorized, "INVALID_SHARE_TOKEN", "share link is invalid or has expired"
	case errors.Is(err, domain.ErrTooManyImages):
		return http.StatusBadRequest, "TOO_MANY_IMAGES", withDetail("too many images in submission", err, domain.ErrTooManyImages)
	case errors.Is(err, domain.ErrUnsupportedImageType):
		return http.StatusBadRequest, "UNSUPPORTED_IMAGE_TYPE", "unsupported image type; allowed: jpg, png, gif, webp"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: txt, md, html, xlsx"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type; allowed: brand-guidelines, compliance-rules, legal-requirements"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", withDetail("invalid request", err, domain.ErrInvalidRequest)
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// withDetail appends the detail written right after sentinel in err's chain
// to a fixed message. Wrapping prefixes added by callers are dropped.
func withDetail(fixed string, err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	i := strings.Index(msg, marker)
	if i < 0 {
		return fixed
	}
	detail := strings.TrimSpace(msg[i+len(marker):])
	if detail == "" {
		return fixed
	}
	return fixed + ": " + detail
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	logError(c, status, err)
	RespondError(c, status, code, msg)
}

// HandleAnalysisError maps a domain error into the analysis failure body.
func HandleAnalysisError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	logError(c, status, err)
	c.JSON(status, AnalysisErrorResponse{Error: true, Message: msg, Code: code})
}

func logError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		middleware.GetLogger(c).Error("request failed", zap.Int("status", status), zap.Error(err))
	}
}

// pagination reads offset/limit query params, clamping limit to 1..100.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
