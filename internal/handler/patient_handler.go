package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediscribe/internal/service"
)

// PatientHandler handles patient management endpoints.
type PatientHandler struct {
	patientService service.PatientService
	visitService   service.VisitService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patientService service.PatientService, visitService service.VisitService) *PatientHandler {
	return &PatientHandler{patientService: patientService, visitService: visitService}
}

// Create handles POST /api/v1/patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		Age            string `json:"age"`
		Gender         string `json:"gender"`
		Contact        string `json:"contact"`
		MedicalHistory string `json:"medical_history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), &service.CreatePatientInput{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Contact:        req.Contact,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, patient)
}

// List handles GET /api/v1/patients
func (h *PatientHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	patients, total, err := h.patientService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, patients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/patients/:id
func (h *PatientHandler) GetByID(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), patientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, patient)
}

// Delete handles DELETE /api/v1/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), patientID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": patientID})
}

// ListVisits handles GET /api/v1/patients/:id/visits
func (h *PatientHandler) ListVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid patient ID")
		return
	}

	offset, limit := parsePagination(c)

	visits, total, err := h.visitService.ListByPatient(c.Request.Context(), patientID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, visits, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func parsePagination(c *gin.Context) (offset, limit int) {
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
