package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediscribe/internal/service"
)

// VisitHandler handles visit management endpoints.
type VisitHandler struct {
	visitService service.VisitService
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(visitService service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// Create handles POST /api/v1/visits
func (h *VisitHandler) Create(c *gin.Context) {
	var req struct {
		PatientID string `json:"patient_id" binding:"required"`
		VisitDate string `json:"visit_date"`
		VisitType string `json:"visit_type"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "patient_id is required")
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	var visitDate time.Time
	if req.VisitDate != "" {
		visitDate, err = time.Parse("2006-01-02", req.VisitDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "visit_date must be YYYY-MM-DD")
			return
		}
	}

	visit, err := h.visitService.Create(c.Request.Context(), &service.CreateVisitInput{
		PatientID: patientID,
		VisitDate: visitDate,
		VisitType: req.VisitType,
		Notes:     req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, visit)
}

// GetByID handles GET /api/v1/visits/:id
func (h *VisitHandler) GetByID(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid visit ID")
		return
	}

	visit, err := h.visitService.GetByID(c.Request.Context(), visitID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, visit)
}
