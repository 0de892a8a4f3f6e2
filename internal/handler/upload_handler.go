package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediscribe/internal/service"
)

// UploadHandler handles document upload endpoints.
type UploadHandler struct {
	fileService service.FileService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(fileService service.FileService) *UploadHandler {
	return &UploadHandler{fileService: fileService}
}

// Upload handles POST /api/v1/upload/:visit_id
func (h *UploadHandler) Upload(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid visit ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.fileService.UploadDocument(c.Request.Context(), visitID, file, header)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}
