package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardcomply/internal/service"
)

// ComplianceHandler handles the compliance analysis endpoint.
type ComplianceHandler struct {
	complianceService service.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// Analyze handles POST /api/v1/compliance/analyze
// @Summary Analyze creative for issuer brand compliance
// @Description Runs the image and text compliance checks for a creative submission.
// @Description Static ads are base64 data URLs or object storage keys. With demo=true a fixed sample result is returned.
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Creative submission"
// @Success 200 {object} service.AnalyzeOutput "Compliance findings"
// @Failure 400 {object} AnalysisErrorResponse "Invalid submission"
// @Failure 413 {object} AnalysisErrorResponse "Image too large"
// @Failure 503 {object} AnalysisErrorResponse "Analysis not configured"
// @Failure 500 {object} AnalysisErrorResponse "Internal error"
// @Router /compliance/analyze [post]
func (h *ComplianceHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AnalysisErrorResponse{
			Error:   true,
			Message: "request body must be valid JSON",
			Code:    "INVALID_REQUEST",
		})
		return
	}

	out, err := h.complianceService.Analyze(c.Request.Context(), service.AnalyzeInput{
		Issuer:      req.Issuer,
		StaticAds:   req.Assets.StaticAds,
		PrimaryText: req.Assets.PrimaryText,
		Headlines:   req.Assets.Headlines,
		Demo:        req.Demo,
	})
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// Status handles GET /api/v1/compliance/status
// @Summary Analysis availability
// @Description Reports whether live analysis is configured. Demo analysis is always available.
// @Tags compliance
// @Produce json
// @Success 200 {object} Response{data=AnalysisStatusResponse} "Availability"
// @Router /compliance/status [get]
func (h *ComplianceHandler) Status(c *gin.Context) {
	resp := AnalysisStatusResponse{Configured: true}
	if err := h.complianceService.Ready(); err != nil {
		resp.Configured = false
		_, _, resp.Message = MapDomainError(err)
	}
	RespondOK(c, resp)
}
