package router

import (
	"github.com/gin-gonic/gin"

	"mediscribe/internal/config"
	"mediscribe/internal/handler"
	"mediscribe/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	patientH *handler.PatientHandler,
	visitH *handler.VisitHandler,
	uploadH *handler.UploadHandler,
	pipelineH *handler.PipelineHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Patient management
	patients := v1.Group("/patients")
	patients.POST("", patientH.Create)
	patients.GET("", patientH.List)
	patients.GET("/:id", patientH.GetByID)
	patients.DELETE("/:id", patientH.Delete)
	patients.GET("/:id/visits", patientH.ListVisits)

	// Visit management
	visits := v1.Group("/visits")
	visits.POST("", visitH.Create)
	visits.GET("/:id", visitH.GetByID)

	// Document upload
	v1.POST("/upload/:visit_id", uploadH.Upload)

	// Processing pipeline, one stage per call
	v1.POST("/ocr/:visit_id", pipelineH.RunOCR)
	v1.POST("/clean/:visit_id", pipelineH.RunCleaning)
	v1.POST("/summarize/:visit_id", pipelineH.RunSummary)
	v1.GET("/summarize/:visit_id", pipelineH.GetVisitSummary)

	// Exports
	v1.GET("/export/summaries", exportH.ExportSummaries)

	return r
}
