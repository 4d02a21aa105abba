package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "cardcomply/docs"
	"cardcomply/internal/handler"
	"cardcomply/internal/metrics"
	"cardcomply/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	allowedOrigins []string,
	m *metrics.Metrics,
	complianceH *handler.ComplianceHandler,
	referenceH *handler.ReferenceDocumentHandler,
	analysisH *handler.AnalysisHandler,
	issuerH *handler.IssuerHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(m.Middleware())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	compliance := v1.Group("/compliance")
	compliance.POST("/analyze", complianceH.Analyze)
	compliance.GET("/status", complianceH.Status)

	refs := v1.Group("/reference-documents")
	refs.POST("", referenceH.Upload)
	refs.GET("", referenceH.List)
	refs.GET("/count", referenceH.Count)
	refs.GET("/:id", referenceH.GetByID)
	refs.DELETE("/:id", referenceH.Delete)

	v1.POST("/analyses/:id/share", analysisH.Share)
	v1.GET("/shared/:token", analysisH.Shared)
	v1.GET("/shared/:token/export", analysisH.ExportShared)

	v1.GET("/issuers", issuerH.List)

	return r
}
