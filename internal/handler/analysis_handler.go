package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardcomply/internal/csvexport"
	"cardcomply/internal/domain"
	"cardcomply/internal/middleware"
	"cardcomply/internal/service"
)

// AnalysisHandler handles sharing of persisted analysis runs.
type AnalysisHandler struct {
	shareService service.ShareService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(shareService service.ShareService) *AnalysisHandler {
	return &AnalysisHandler{shareService: shareService}
}

// Share handles POST /api/v1/analyses/:id/share
// @Summary Create a share link for an analysis
// @Description Issues a signed, expiring token for a persisted analysis run and optionally emails it.
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Analysis run ID (UUID)"
// @Param request body ShareRequest false "Optional recipient"
// @Success 201 {object} Response{data=service.ShareLink} "Share link created"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or recipient"
// @Failure 404 {object} ErrorResponseBody "Analysis run not found"
// @Router /analyses/{id}/share [post]
func (h *AnalysisHandler) Share(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	link, err := h.shareService.Share(c.Request.Context(), service.ShareInput{
		RunID:          id,
		RecipientEmail: req.RecipientEmail,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, link)
}

// Shared handles GET /api/v1/shared/:token
// @Summary Open a shared analysis
// @Description Returns the analysis run referenced by a share token
// @Tags analyses
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} Response{data=domain.AnalysisRun} "Analysis run"
// @Failure 401 {object} ErrorResponseBody "Invalid or expired token"
// @Router /shared/{token} [get]
func (h *AnalysisHandler) Shared(c *gin.Context) {
	run, err := h.shareService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, run)
}

// ExportShared handles GET /api/v1/shared/:token/export
// @Summary Export a shared analysis as CSV
// @Description Streams the findings of the analysis run referenced by a share token as a CSV file
// @Tags analyses
// @Produce text/csv
// @Param token path string true "Share token"
// @Success 200 {file} file "CSV file"
// @Failure 401 {object} ErrorResponseBody "Invalid or expired token"
// @Failure 500 {object} ErrorResponseBody "Stored results are unreadable"
// @Router /shared/{token}/export [get]
func (h *AnalysisHandler) ExportShared(c *gin.Context) {
	run, err := h.shareService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var findings []domain.ComplianceFinding
	if err := json.Unmarshal(run.Results, &findings); err != nil {
		middleware.GetLogger(c).Error("decoding stored analysis results",
			zap.String("run_id", run.ID.String()), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "stored analysis results are unreadable")
		return
	}

	var buf bytes.Buffer
	if err := csvexport.WriteAll(&buf, findings); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(run.Issuer, run.CreatedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
