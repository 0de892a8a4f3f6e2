package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/domain"
	"mediscribe/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"patient not found", domain.ErrPatientNotFound, http.StatusNotFound, "PATIENT_NOT_FOUND"},
		{"visit not found", domain.ErrVisitNotFound, http.StatusNotFound, "VISIT_NOT_FOUND"},
		{"no documents", domain.ErrNoDocuments, http.StatusBadRequest, "NO_DOCUMENTS"},
		{"ocr text missing", domain.ErrOCRTextNotFound, http.StatusBadRequest, "OCR_TEXT_NOT_FOUND"},
		{"cleaned text missing", domain.ErrCleanedTextNotFound, http.StatusBadRequest, "CLEANED_TEXT_NOT_FOUND"},
		{"summary missing", domain.ErrSummaryNotFound, http.StatusNotFound, "SUMMARY_NOT_FOUND"},
		{"empty extraction", domain.ErrEmptyExtraction, http.StatusUnprocessableEntity, "EMPTY_EXTRACTION"},
		{"unsupported file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"upload failed", domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestMapDomainError_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("stage context"), domain.ErrVisitNotFound)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "VISIT_NOT_FOUND", code)
}
