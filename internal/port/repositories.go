package port

import (
	"context"

	"github.com/google/uuid"

	"mediscribe/internal/domain"
)

// PatientRepository manages patient records.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VisitRepository manages visit records and their pipeline status.
type VisitRepository interface {
	Create(ctx context.Context, v *domain.Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Visit, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VisitStatus) error
}

// DocumentRepository manages uploaded raw documents.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.RawDocument) error
	ListByVisit(ctx context.Context, visitID uuid.UUID) ([]domain.RawDocument, error)
}

// OCRTextRepository manages OCR extraction results. GetLatestByVisit resolves
// "the" OCR text of a visit as the most recently created record.
type OCRTextRepository interface {
	Create(ctx context.Context, t *domain.OCRText) error
	GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.OCRText, error)
}

// CleanedTextRepository manages cleaned text and structured data records.
type CleanedTextRepository interface {
	Create(ctx context.Context, t *domain.CleanedText) error
	GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.CleanedText, error)
}

// SummaryRepository manages generated summaries.
type SummaryRepository interface {
	Create(ctx context.Context, s *domain.Summary) error
	GetLatestByVisit(ctx context.Context, visitID uuid.UUID) (*domain.Summary, error)
	ListForExport(ctx context.Context) ([]domain.SummaryExportRow, error)
}
