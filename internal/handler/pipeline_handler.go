package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediscribe/internal/service"
)

// PipelineHandler exposes the per-stage pipeline endpoints.
type PipelineHandler struct {
	pipeline service.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipeline service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// RunOCR handles POST /api/v1/ocr/:visit_id
func (h *PipelineHandler) RunOCR(c *gin.Context) {
	visitID, ok := parseVisitID(c)
	if !ok {
		return
	}

	ocrText, err := h.pipeline.RunOCR(c.Request.Context(), visitID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ocrText)
}

// RunCleaning handles POST /api/v1/clean/:visit_id
func (h *PipelineHandler) RunCleaning(c *gin.Context) {
	visitID, ok := parseVisitID(c)
	if !ok {
		return
	}

	cleaned, err := h.pipeline.RunCleaning(c.Request.Context(), visitID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cleaned)
}

// RunSummary handles POST /api/v1/summarize/:visit_id
func (h *PipelineHandler) RunSummary(c *gin.Context) {
	visitID, ok := parseVisitID(c)
	if !ok {
		return
	}

	summary, err := h.pipeline.RunSummary(c.Request.Context(), visitID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// GetVisitSummary handles GET /api/v1/summarize/:visit_id
func (h *PipelineHandler) GetVisitSummary(c *gin.Context) {
	visitID, ok := parseVisitID(c)
	if !ok {
		return
	}

	view, err := h.pipeline.GetVisitSummary(c.Request.Context(), visitID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

func parseVisitID(c *gin.Context) (uuid.UUID, bool) {
	visitID, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid visit ID")
		return uuid.Nil, false
	}
	return visitID, true
}
